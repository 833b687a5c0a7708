package get_availability

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	getAvailability "github.com/m04kA/SMC-MobileDiagnostics/internal/usecase/get_availability"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/logger"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/ptr"
)

type stubUseCase struct {
	result *domain.AvailabilityResult
	err    error
	req    *getAvailability.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailability.Request) (*domain.AvailabilityResult, error) {
	s.req = req
	return s.result, s.err
}

func serve(uc *stubUseCase, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/booking/availability?"+query, nil)
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, loc)

	uc := &stubUseCase{result: &domain.AvailabilityResult{
		Postcode:             "TN23 1AA",
		Zone:                 domain.ZoneB,
		DriveTimeMinutes:     34,
		TravelBufferMinutes:  45,
		TotalDurationMinutes: 105,
		Price:                domain.FixedPrice(135),
		Deposit:              ptr.Ptr(30.0),
		Slots:                []domain.Slot{{Start: start, Available: true}},
	}}

	rec := serve(uc, "postcode=tn23+1aa&service_ids=diagnostic-callout,+battery-check")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"diagnostic-callout", "battery-check"}, uc.req.ServiceIDs)
	assert.JSONEq(t, `{
		"postcode":"TN23 1AA","zone":"B","drive_time_minutes":34,"travel_buffer_minutes":45,
		"service_duration_minutes":0,"total_duration_minutes":105,
		"fixed_price_gbp":135,"deposit_gbp":30,"manual_review_required":false,
		"slots":[{"start":"2026-10-20T09:00:00+01:00","available":true}]
	}`, rec.Body.String())
}

func TestHandle_QuoteRequired(t *testing.T) {
	uc := &stubUseCase{result: &domain.AvailabilityResult{Zone: domain.ZoneOutside, Price: domain.QuoteRequired(), ManualReviewRequired: true}}

	rec := serve(uc, "postcode=CT1+1AA&service_ids=diagnostic-callout")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fixed_price_gbp":null`)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"missing postcode", "service_ids=x", nil, http.StatusBadRequest, msgMissingPostcode},
		{"missing services", "postcode=TN23+1AA&service_ids=,", nil, http.StatusBadRequest, msgMissingServiceIDs},
		{"unknown service", "postcode=TN23+1AA&service_ids=tyres", &getAvailability.UnknownServiceError{ID: "tyres"}, http.StatusBadRequest, "Unknown service: tyres"},
		{"invalid postcode", "postcode=12345&service_ids=x", getAvailability.ErrInvalidPostcode, http.StatusBadRequest, msgInvalidPostcode},
		{"not covered", "postcode=ZZ1+1ZZ&service_ids=x", getAvailability.ErrNotCovered, http.StatusUnprocessableEntity, msgNotCovered},
		{"too many services", "postcode=TN23+1AA&service_ids=x", fmt.Errorf("%w: too many", getAvailability.ErrInvalidInput), http.StatusBadRequest,
			fmt.Sprintf(msgInvalidSelection, domain.MaxServicesPerBooking)},
		{"internal", "postcode=TN23+1AA&service_ids=x", getAvailability.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.query)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantDetail != "" {
				assert.JSONEq(t, fmt.Sprintf(`{"detail":%q}`, tt.wantDetail), rec.Body.String())
			}
		})
	}
}

package update_booking_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/bookings"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/bookings/models"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/logger"
)

type stubService struct {
	booking *domain.Booking
	err     error
	id      int64
	req     *models.UpdateStatusRequest
}

func (s *stubService) UpdateStatus(_ context.Context, id int64, req *models.UpdateStatusRequest) (*domain.Booking, error) {
	s.id, s.req = id, req
	return s.booking, s.err
}

func serve(svc *stubService, id, payload string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/admin/bookings/{bookingId}/status", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/admin/bookings/"+id+"/status", strings.NewReader(payload)))
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &stubService{booking: &domain.Booking{
		ID: 5, Reference: "MD-1", Status: domain.StatusCancelled,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}}

	rec := serve(svc, "5", `{"status":"cancelled","reason":"Customer called"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.id)
	assert.Equal(t, "Customer called", svc.req.Reason)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{"bad id", "abc", nil, http.StatusBadRequest},
		{"unknown status", "5", bookings.ErrInvalidStatus, http.StatusBadRequest},
		{"not found", "5", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"transition", "5", fmt.Errorf("%w: completed -> confirmed", bookings.ErrInvalidTransition), http.StatusConflict},
		{"slot taken", "5", bookings.ErrSlotTaken, http.StatusConflict},
		{"concurrent update", "5", bookings.ErrConcurrentUpdate, http.StatusConflict},
		{"internal", "5", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, tt.id, `{"status":"confirmed"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

package get_availability

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	getAvailability "github.com/m04kA/SMC-MobileDiagnostics/internal/usecase/get_availability"
)

const (
	msgMissingPostcode   = "postcode is required"
	msgMissingServiceIDs = "service_ids is required"
	msgInvalidSelection  = "Please choose between 1 and %d services"
	msgInvalidPostcode   = "Please enter a valid UK postcode"
	msgNotCovered        = "Sorry, we don't currently cover this postcode"
	msgUnknownService    = "Unknown service: "
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/booking/availability
// Query params: postcode (required), service_ids (required, через запятую)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := ToUseCaseRequest(r.URL.Query().Get("postcode"), r.URL.Query().Get("service_ids"))

	if req.Postcode == "" {
		h.logger.Warn("GET /booking/availability - Missing postcode")
		handlers.RespondBadRequest(w, msgMissingPostcode)
		return
	}
	if len(req.ServiceIDs) == 0 {
		h.logger.Warn("GET /booking/availability - Missing service_ids")
		handlers.RespondBadRequest(w, msgMissingServiceIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		var unknown *getAvailability.UnknownServiceError
		switch {
		case errors.As(err, &unknown):
			h.logger.Warn("GET /booking/availability - Unknown service: %s", unknown.ID)
			handlers.RespondBadRequest(w, msgUnknownService+unknown.ID)

		case errors.Is(err, getAvailability.ErrInvalidPostcode):
			h.logger.Warn("GET /booking/availability - Invalid postcode: %q", req.Postcode)
			handlers.RespondBadRequest(w, msgInvalidPostcode)

		case errors.Is(err, getAvailability.ErrNotCovered):
			h.logger.Warn("GET /booking/availability - Postcode not covered: %q", req.Postcode)
			handlers.RespondUnprocessable(w, msgNotCovered)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /booking/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgInvalidSelection, domain.MaxServicesPerBooking))

		default:
			h.logger.Error("GET /booking/availability - Failed to get availability: postcode=%q, error=%v", req.Postcode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking/availability - Availability computed: postcode=%s, zone=%s, available=%d",
		result.Postcode, result.Zone, result.AvailableCount())
	handlers.RespondJSON(w, http.StatusOK, FromDomain(result))
}

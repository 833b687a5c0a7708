package calculate_zone

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/zones"
)

const (
	msgInvalidPostcode = "Please enter a valid UK postcode"
	msgNotCovered      = "Sorry, we don't currently cover this postcode"
)

type Handler struct {
	service ZoneService
	logger  Logger
}

func NewHandler(service ZoneService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/calculate-zone
// Query params: postcode (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	postcode := strings.TrimSpace(r.URL.Query().Get("postcode"))
	if postcode == "" {
		h.logger.Warn("GET /calculate-zone - Missing postcode")
		handlers.RespondBadRequest(w, msgInvalidPostcode)
		return
	}

	result, err := h.service.Calculate(r.Context(), postcode)
	if err != nil {
		switch {
		case errors.Is(err, zones.ErrInvalidPostcode):
			h.logger.Warn("GET /calculate-zone - Invalid postcode: %q", postcode)
			handlers.RespondBadRequest(w, msgInvalidPostcode)

		case errors.Is(err, zones.ErrNotCovered):
			h.logger.Warn("GET /calculate-zone - Postcode not covered: %q", postcode)
			handlers.RespondUnprocessable(w, msgNotCovered)

		default:
			h.logger.Error("GET /calculate-zone - Failed to calculate zone: postcode=%q, error=%v", postcode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calculate-zone - Zone calculated: postcode=%s, zone=%s, drive=%d min",
		result.Postcode, result.Zone, result.DriveTimeMinutes)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(result))
}

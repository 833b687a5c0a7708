package get_services

import (
	"net/http"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/booking/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /booking/services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /booking/services - Services retrieved successfully: count=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(services))
}

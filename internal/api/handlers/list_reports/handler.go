package list_reports

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
)

const msgInvalidBookingID = "Invalid booking ID"

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/admin/reports
// Query params: booking_id (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var bookingID *int64
	if v := r.URL.Query().Get("booking_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.logger.Warn("GET /admin/reports - Invalid booking ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)
			return
		}
		bookingID = &id
	}

	result, err := h.service.List(r.Context(), bookingID)
	if err != nil {
		h.logger.Error("GET /admin/reports - Failed to list reports: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]handlers.ReportResponse, 0, len(result))
	for i := range result {
		response = append(response, handlers.FromDomainReport(&result[i]))
	}

	h.logger.Info("GET /admin/reports - Reports retrieved successfully: count=%d", len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}

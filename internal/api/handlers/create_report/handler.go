package create_report

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/reports"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgBookingNotFound    = "Booking not found"
)

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

// Handle POST /api/admin/reports
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req handlers.ReportRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/reports - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	report, err := h.service.Create(r.Context(), req.ToServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidInput):
			h.logger.Warn("POST /admin/reports - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, reports.ErrBookingNotFound):
			h.logger.Warn("POST /admin/reports - Booking not found: booking_id=%v", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("POST /admin/reports - Failed to create report: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/reports - Report created successfully: report_id=%d", report.ID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainReport(report))
}

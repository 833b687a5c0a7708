package update_report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/reports"
)

const (
	msgInvalidReportID    = "Invalid report ID"
	msgInvalidRequestBody = "Invalid request body"
	msgNotFound           = "Report not found"
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

// Handle PUT /api/admin/reports/{reportId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reportID, err := strconv.ParseInt(mux.Vars(r)["reportId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/reports/{id} - Invalid report ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReportID)
		return
	}

	var req handlers.ReportRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/reports/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	report, err := h.service.Update(r.Context(), reportID, req.ToServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidInput):
			h.logger.Warn("PUT /admin/reports/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, reports.ErrReportNotFound):
			h.logger.Warn("PUT /admin/reports/{id} - Report not found: report_id=%d", reportID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reports.ErrBookingNotFound):
			h.logger.Warn("PUT /admin/reports/{id} - Booking not found: booking_id=%v", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("PUT /admin/reports/{id} - Failed to update report: report_id=%d, error=%v", reportID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/reports/{id} - Report updated successfully: report_id=%d", reportID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainReport(report))
}

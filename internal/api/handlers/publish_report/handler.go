package publish_report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/reports"
)

const (
	msgInvalidReportID = "Invalid report ID"
	msgNotFound        = "Report not found"
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

// Handle POST /api/admin/reports/{reportId}/publish
// Повторная публикация возвращает уже выданную ссылку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reportID, err := strconv.ParseInt(mux.Vars(r)["reportId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/reports/{id}/publish - Invalid report ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReportID)
		return
	}

	report, err := h.service.Publish(r.Context(), reportID)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrReportNotFound):
			h.logger.Warn("POST /admin/reports/{id}/publish - Report not found: report_id=%d", reportID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /admin/reports/{id}/publish - Failed to publish report: report_id=%d, error=%v", reportID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/reports/{id}/publish - Report published: report_id=%d", reportID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainReport(report))
}

package get_report

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

// Handle GET /api/admin/reports/{reportId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reportID, err := strconv.ParseInt(mux.Vars(r)["reportId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/reports/{id} - Invalid report ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReportID)
		return
	}

	report, err := h.service.GetByID(r.Context(), reportID)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrReportNotFound):
			h.logger.Warn("GET /admin/reports/{id} - Report not found: report_id=%d", reportID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/reports/{id} - Failed to get report: report_id=%d, error=%v", reportID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainReport(report))
}

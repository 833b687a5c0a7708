package get_shared_report

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/reports"
)

const msgNotFound = "This report link is not valid"

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

// Handle GET /api/reports/share/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	report, err := h.service.GetShared(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrReportNotFound):
			h.logger.Warn("GET /reports/share/{token} - Report not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /reports/share/{token} - Failed to get report: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reports/share/{token} - Shared report viewed: report_id=%d", report.ID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(report))
}

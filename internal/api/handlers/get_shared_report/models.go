package get_shared_report

import (
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// SharedReportResponse публичная часть отчета без служебных полей
type SharedReportResponse struct {
	Title               string           `json:"title"`
	VehicleRegistration string           `json:"vehicle_registration"`
	Summary             string           `json:"summary"`
	Findings            []domain.Finding `json:"findings"`
	PublishedAt         string           `json:"published_at"`
}

// FromDomain конвертирует отчет в публичный HTTP ответ
func FromDomain(r *domain.Report) *SharedReportResponse {
	resp := &SharedReportResponse{
		Title:               r.Title,
		VehicleRegistration: r.VehicleRegistration,
		Summary:             r.Summary,
		Findings:            r.Findings,
	}
	if resp.Findings == nil {
		resp.Findings = []domain.Finding{}
	}
	if r.PublishedAt != nil {
		resp.PublishedAt = r.PublishedAt.Format(time.RFC3339)
	}
	return resp
}

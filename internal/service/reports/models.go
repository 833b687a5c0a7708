package reports

import "github.com/m04kA/SMC-MobileDiagnostics/internal/domain"

const (
	maxTitleLength    = 200
	maxSummaryLength  = 5000
	maxFindingsPerRep = 50
)

// ReportInput содержимое отчета от техника
type ReportInput struct {
	BookingID           *int64
	Title               string
	VehicleRegistration string
	Summary             string
	Findings            []domain.Finding
}

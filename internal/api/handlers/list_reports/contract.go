package list_reports

import (
	"context"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

type ReportService interface {
	List(ctx context.Context, bookingID *int64) ([]domain.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

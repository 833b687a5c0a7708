package publish_report

import (
	"context"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

type ReportService interface {
	Publish(ctx context.Context, id int64) (*domain.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

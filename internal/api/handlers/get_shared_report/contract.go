package get_shared_report

import (
	"context"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

type ReportService interface {
	GetShared(ctx context.Context, token string) (*domain.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

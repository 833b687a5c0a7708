package create_report

import (
	"context"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/reports"
)

type ReportService interface {
	Create(ctx context.Context, input reports.ReportInput) (*domain.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

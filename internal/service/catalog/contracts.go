package catalog

import (
	"context"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога
type ServiceRepository interface {
	ListActive(ctx context.Context) ([]domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

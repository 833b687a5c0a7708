package calculate_zone

import (
	"context"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

type ZoneService interface {
	Calculate(ctx context.Context, rawPostcode string) (*domain.ZoneResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package zones

import (
	"context"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// RoutingClient внешний расчет времени в пути
type RoutingClient interface {
	DriveTime(ctx context.Context, from, to string) (domain.DriveTime, error)
}

// DriveTimeCache кэш времени в пути
type DriveTimeCache interface {
	Get(ctx context.Context, from, to string) (domain.DriveTime, bool, error)
	Set(ctx context.Context, from, to string, dt domain.DriveTime) error
}

// CatalogService источник цен для ценового диапазона зоны
type CatalogService interface {
	List(ctx context.Context) ([]domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

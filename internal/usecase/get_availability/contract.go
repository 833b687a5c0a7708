package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// FindBlocking получает бронирования, занимающие слоты в интервале [from, to)
	FindBlocking(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// CatalogService интерфейс каталога услуг
type CatalogService interface {
	Resolve(ctx context.Context, ids []string) ([]domain.Service, error)
}

// ZoneService интерфейс калькулятора зоны
type ZoneService interface {
	Resolve(ctx context.Context, postcode string) (*domain.ZoneResult, error)
}

// Metrics метрики запросов доступности
type Metrics interface {
	ObserveAvailability(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

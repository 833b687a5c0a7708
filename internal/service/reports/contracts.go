package reports

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// ReportRepository интерфейс репозитория отчетов
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	GetByShareToken(ctx context.Context, token string) (*domain.Report, error)
	List(ctx context.Context, bookingID *int64) ([]domain.Report, error)
	Update(ctx context.Context, report *domain.Report) error
	Publish(ctx context.Context, id int64, token string, publishedAt time.Time) error
}

// BookingLookup проверка существования бронирования (репозиторий бронирований)
type BookingLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// EventPublisher публикация событий
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package reserve_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/payments"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/usecase/get_availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindBlocking(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error
	SetPaymentSession(ctx context.Context, id int64, sessionID string) error
}

// AvailabilityUseCase пересчет цены и слотов на сервере
type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *get_availability.Request) (*domain.AvailabilityResult, error)
	MaxConcurrentBookings() int
}

// PaymentService создание оплаты депозита
type PaymentService interface {
	CreateDepositCheckout(ctx context.Context, booking *domain.Booking) (*payments.Checkout, error)
}

// EventPublisher публикация событий
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики бронирований
type Metrics interface {
	ObserveReservation(status string)
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

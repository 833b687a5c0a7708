package wizard

import (
	"context"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/bookingapi"
)

// BookingAPI публичное API бронирования
type BookingAPI interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	GetAvailability(ctx context.Context, postcode string, serviceIDs []string) (*domain.AvailabilityResult, error)
	Reserve(ctx context.Context, reservation bookingapi.Reservation) (*bookingapi.Outcome, error)
}

// Navigator выполняет полный переход на внешний адрес (страница оплаты)
type Navigator interface {
	Redirect(url string) error
}

// Analytics получатель событий; вызывается в отдельной горутине
type Analytics interface {
	Track(event string, props map[string]string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

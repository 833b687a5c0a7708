package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/catalog"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/zones"
)

// UseCase use case для расчета поездки, цены и доступных слотов
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      CatalogService
	zones        ZoneService
	settings     Settings
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog CatalogService,
	zones ZoneService,
	settings Settings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.HorizonDays <= 0 {
		settings.HorizonDays = domain.DefaultHorizonDays
	}
	if settings.SlotStepMinutes <= 0 {
		settings.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}
	if settings.MaxConcurrentBookings <= 0 {
		settings.MaxConcurrentBookings = domain.DefaultMaxConcurrentBookings
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		zones:        zones,
		settings:     settings,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// MaxConcurrentBookings лимит одновременных визитов
func (uc *UseCase) MaxConcurrentBookings() int {
	return uc.settings.MaxConcurrentBookings
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.AvailabilityResult, error) {
	uc.logger.Info("GetAvailability: postcode=%s, services=%v", req.Postcode, req.ServiceIDs)

	result, err := uc.execute(ctx, req)
	switch {
	case err == nil && result.ManualReviewRequired:
		uc.metrics.ObserveAvailability("manual_review")
	case err == nil:
		uc.metrics.ObserveAvailability("ok")
	case errors.Is(err, ErrInternal):
		uc.metrics.ObserveAvailability("error")
	default:
		uc.metrics.ObserveAvailability("rejected")
	}

	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.AvailabilityResult, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услуги из каталога
	services, err := uc.catalog.Resolve(ctx, req.ServiceIDs)
	if err != nil {
		var unknown *catalog.UnknownServiceError
		switch {
		case errors.As(err, &unknown):
			return nil, &UnknownServiceError{ID: unknown.ID}
		case errors.Is(err, catalog.ErrNoServices), errors.Is(err, catalog.ErrTooManyServices):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailability: failed to resolve services: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve services: %v", ErrInternal, err)
	}

	// 4. Определяем зону
	zone, err := uc.zones.Resolve(ctx, req.Postcode)
	if err != nil {
		switch {
		case errors.Is(err, zones.ErrInvalidPostcode):
			return nil, ErrInvalidPostcode
		case errors.Is(err, zones.ErrNotCovered):
			return nil, ErrNotCovered
		}
		uc.logger.Error("GetAvailability: failed to resolve zone for %s: %v", req.Postcode, err)
		return nil, fmt.Errorf("%w: failed to resolve zone: %v", ErrInternal, err)
	}

	// 5. Длительность визита с учетом дороги
	serviceMinutes := 0
	for _, s := range services {
		serviceMinutes += s.DurationMinutes
	}
	buffer := travelBuffer(zone.DriveTimeMinutes, uc.settings.TravelBufferStep)
	total := serviceMinutes + buffer

	result := &domain.AvailabilityResult{
		Postcode:               zone.Postcode,
		Zone:                   zone.Zone,
		DriveTimeMinutes:       zone.DriveTimeMinutes,
		TravelBufferMinutes:    buffer,
		ServiceDurationMinutes: serviceMinutes,
		TotalDurationMinutes:   total,
		Price:                  domain.QuoteRequired(),
		Slots:                  []domain.Slot{},
	}

	// 6. Вне зоны обслуживания - только ручная проверка
	if zone.ManualReviewRequired {
		result.ManualReviewRequired = true
		uc.logger.Info("GetAvailability: %s is outside service zones, manual review", zone.Postcode)
		return result, nil
	}

	// 7. Цена и депозит
	result.Price = quoteFor(services, zone.Zone)
	result.Deposit = depositFor(result.Price, uc.settings)

	// 8. Генерируем начала слотов
	earliest := now.Add(time.Duration(minNoticeHours(services)) * time.Hour)
	starts := generateStarts(now, earliest, total, uc.settings)
	if len(starts) == 0 {
		uc.logger.Info("GetAvailability: no slot starts within %d days", uc.settings.HorizonDays)
		return result, nil
	}

	// 9. Получаем занимающие слоты бронирования на весь горизонт
	windowEnd := starts[len(starts)-1].Add(time.Duration(total) * time.Minute)
	bookings, err := uc.bookingRepo.FindBlocking(ctx, starts[0], windowEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 10. Вычисляем доступность для каждого слота
	result.Slots = markAvailability(starts, total, bookings, uc.settings.MaxConcurrentBookings)

	uc.logger.Info("GetAvailability: zone=%s, total=%d min, %d/%d slots available",
		zone.Zone, total, result.AvailableCount(), len(result.Slots))

	return result, nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveAvailability(string) {}

package zones

import (
	"context"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// Config параметры расчета зоны
type Config struct {
	Thresholds domain.ZoneThresholds
	// Bases почтовые индексы, откуда выезжает техник
	Bases []string
	// Districts время в пути по outward-коду, используется без сервиса маршрутов
	Districts map[string]domain.DriveTime
}

// Service калькулятор зоны выезда
type Service struct {
	cfg     Config
	routing RoutingClient
	cache   DriveTimeCache
	catalog CatalogService
	logger  Logger
}

// NewService создает калькулятор зоны
// routing и cache могут быть nil: тогда используется только таблица районов
func NewService(cfg Config, routing RoutingClient, cache DriveTimeCache, catalog CatalogService, logger Logger) *Service {
	return &Service{
		cfg:     cfg,
		routing: routing,
		cache:   cache,
		catalog: catalog,
		logger:  logger,
	}
}

// Resolve определяет зону и время в пути для почтового индекса
func (s *Service) Resolve(ctx context.Context, rawPostcode string) (*domain.ZoneResult, error) {
	// 1. Нормализация индекса
	postcode, err := domain.NormalizePostcode(rawPostcode)
	if err != nil {
		return nil, ErrInvalidPostcode
	}

	// 2. Время в пути от ближайшей базы
	dt, err := s.driveTime(ctx, postcode)
	if err != nil {
		return nil, err
	}

	// 3. Классификация
	zone := s.cfg.Thresholds.Classify(dt.Minutes)

	return &domain.ZoneResult{
		Postcode:             postcode,
		Zone:                 zone,
		DriveTimeMinutes:     dt.Minutes,
		DistanceMiles:        dt.DistanceMiles,
		ManualReviewRequired: zone == domain.ZoneOutside,
	}, nil
}

// Calculate как Resolve, но дополнительно считает ценовой диапазон зоны по каталогу
func (s *Service) Calculate(ctx context.Context, rawPostcode string) (*domain.ZoneResult, error) {
	result, err := s.Resolve(ctx, rawPostcode)
	if err != nil {
		return nil, err
	}

	if result.Zone == domain.ZoneOutside {
		return result, nil
	}

	services, err := s.catalog.List(ctx)
	if err != nil {
		// Диапазон цен необязателен
		s.logger.Warn("Calculate: catalog unavailable, omitting price band: %v", err)
		return result, nil
	}
	result.PriceBand = domain.PriceBandFor(services, result.Zone)

	return result, nil
}

func (s *Service) driveTime(ctx context.Context, postcode string) (domain.DriveTime, error) {
	if s.routing != nil && len(s.cfg.Bases) > 0 {
		if dt, ok := s.routedDriveTime(ctx, postcode); ok {
			return dt, nil
		}
	}

	district := domain.OutwardCode(postcode)
	if dt, ok := s.cfg.Districts[district]; ok {
		return dt, nil
	}

	s.logger.Info("driveTime: district %s is not covered", district)
	return domain.DriveTime{}, ErrNotCovered
}

// routedDriveTime минимум по базам; ok=false если ни одна база не ответила
func (s *Service) routedDriveTime(ctx context.Context, postcode string) (domain.DriveTime, bool) {
	var (
		best  domain.DriveTime
		found bool
	)

	for _, base := range s.cfg.Bases {
		dt, err := s.baseDriveTime(ctx, base, postcode)
		if err != nil {
			continue
		}
		if !found || dt.Minutes < best.Minutes {
			best = dt
			found = true
		}
	}

	return best, found
}

func (s *Service) baseDriveTime(ctx context.Context, base, postcode string) (domain.DriveTime, error) {
	if s.cache != nil {
		dt, ok, err := s.cache.Get(ctx, base, postcode)
		if err != nil {
			s.logger.Warn("baseDriveTime: cache read failed for %s -> %s: %v", base, postcode, err)
		}
		if ok {
			return dt, nil
		}
	}

	dt, err := s.routing.DriveTime(ctx, base, postcode)
	if err != nil {
		s.logger.Warn("baseDriveTime: routing failed for %s -> %s: %v", base, postcode, err)
		return domain.DriveTime{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, base, postcode, dt); err != nil {
			s.logger.Warn("baseDriveTime: cache write failed for %s -> %s: %v", base, postcode, err)
		}
	}

	return dt, nil
}

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// Service сервис каталога услуг
type Service struct {
	repo   ServiceRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo ServiceRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List возвращает активные услуги в порядке отображения
func (s *Service) List(ctx context.Context) ([]domain.Service, error) {
	services, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return services, nil
}

// Resolve находит услуги по идентификаторам в порядке запроса
// Пустые и повторяющиеся идентификаторы отбрасываются
func (s *Service) Resolve(ctx context.Context, ids []string) ([]domain.Service, error) {
	// 1. Нормализуем список идентификаторов
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if len(unique) == 0 {
		return nil, ErrNoServices
	}
	if len(unique) > domain.MaxServicesPerBooking {
		return nil, fmt.Errorf("%w: at most %d", ErrTooManyServices, domain.MaxServicesPerBooking)
	}

	// 2. Загружаем каталог
	catalog, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Сопоставляем
	resolved := make([]domain.Service, 0, len(unique))
	for _, id := range unique {
		service, ok := domain.FindService(catalog, id)
		if !ok {
			s.logger.Warn("Resolve: unknown service id=%s", id)
			return nil, &UnknownServiceError{ID: id}
		}
		resolved = append(resolved, service)
	}

	return resolved, nil
}

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/dbmetrics"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"label",
	"duration_minutes",
	"min_notice_hours",
	"zone_prices",
}

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive получает активные услуги в порядке отображения
func (r *Repository) ListActive(ctx context.Context) ([]domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"active": true}).
		OrderBy("sort_order ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// GetByID получает активную услугу по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id, "active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services, err := scanServices(rows)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}

	return &services[0], nil
}

func scanServices(rows *sql.Rows) ([]domain.Service, error) {
	services := make([]domain.Service, 0)

	for rows.Next() {
		var (
			s         domain.Service
			rawPrices []byte
		)
		if err := rows.Scan(&s.ID, &s.Label, &s.DurationMinutes, &s.MinNoticeHours, &rawPrices); err != nil {
			return nil, fmt.Errorf("%w: scanServices - scan row: %v", ErrScanRow, err)
		}

		prices := make(map[string]float64)
		if len(rawPrices) > 0 {
			if err := json.Unmarshal(rawPrices, &prices); err != nil {
				return nil, fmt.Errorf("%w: scanServices - decode zone_prices for %s: %v", ErrScanRow, s.ID, err)
			}
		}
		s.ZonePrices = make(map[domain.ZoneID]float64, len(prices))
		for zone, price := range prices {
			s.ZonePrices[domain.ZoneID(zone)] = price
		}

		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

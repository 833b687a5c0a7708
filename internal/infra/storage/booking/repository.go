package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/dbmetrics"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникальности
const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"reference",
	"service_ids",
	"slot_start",
	"duration_minutes",
	"status",
	"zone",
	"drive_time_minutes",
	"travel_buffer_minutes",
	"price_gbp",
	"deposit_gbp",
	"customer_name",
	"email",
	"phone",
	"postcode",
	"address_line1",
	"town",
	"vehicle_registration",
	"vehicle_make",
	"vehicle_model",
	"mileage",
	"symptoms",
	"notes",
	"safe_location_confirmed",
	"payment_session_id",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Вызывайте внутри сериализуемой транзакции вместе с FindBlocking, чтобы два
// клиента не заняли один слот.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	d := booking.Details
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"service_ids",
			"slot_start",
			"duration_minutes",
			"status",
			"zone",
			"drive_time_minutes",
			"travel_buffer_minutes",
			"price_gbp",
			"deposit_gbp",
			"customer_name",
			"email",
			"phone",
			"postcode",
			"address_line1",
			"town",
			"vehicle_registration",
			"vehicle_make",
			"vehicle_model",
			"mileage",
			"symptoms",
			"notes",
			"safe_location_confirmed",
		).
		Values(
			booking.Reference,
			pq.Array(booking.ServiceIDs),
			booking.SlotStart,
			booking.DurationMinutes,
			booking.Status,
			booking.Zone,
			booking.DriveTimeMinutes,
			booking.TravelBufferMinutes,
			booking.PriceGBP,
			booking.DepositGBP,
			d.Name,
			d.Email,
			d.Phone,
			d.Postcode,
			d.AddressLine1,
			d.Town,
			d.VehicleRegistration,
			d.VehicleMake,
			d.VehicleModel,
			d.Mileage,
			d.Symptoms,
			sql.NullString{String: d.Notes, Valid: d.Notes != ""},
			d.SafeLocationConfirmed,
		).
		Suffix("ON CONFLICT (reference) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		// ON CONFLICT не прерывает транзакцию: совпадение номера дает пустой результат
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDuplicateReference
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateReference
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByReference получает бронирование по номеру (MD-XXXXXXXX)
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"reference": reference}, "GetByReference")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Sqlizer, op string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// List получает бронирования по фильтру админки
// Сначала ближайшие по времени визита, бронирования без времени - в конце
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	// Фильтрация по периоду
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_start": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"slot_start": *filter.To})
	}

	// Поиск по номеру, имени, email и номеру автомобиля
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"reference": pattern},
			squirrel.ILike{"customer_name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"vehicle_registration": pattern},
		})
	}

	query, args, err := selectBuilder.
		OrderBy("slot_start ASC NULLS LAST", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// FindBlocking получает бронирования, занимающие слоты и пересекающиеся с [from, to)
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) FindBlocking(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": statusStrings(domain.SlotBlockingStatuses)}).
		Where(squirrel.NotEq{"slot_start": nil}).
		Where(squirrel.Lt{"slot_start": to}).
		Where(squirrel.Expr("slot_start + make_interval(mins => duration_minutes) > ?", from)).
		OrderBy("slot_start ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlocking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlocking - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
// Для отмены сохраняет причину и время отмены
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()"))

	if status == domain.StatusCancelled {
		updateBuilder = updateBuilder.
			Set("cancellation_reason", reason).
			Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, query, args, "UpdateStatus")
}

// SetPaymentSession сохраняет ID сессии Stripe Checkout
func (r *Repository) SetPaymentSession(ctx context.Context, id int64, sessionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_session_id", sessionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentSession - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, query, args, "SetPaymentSession")
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var (
			slotStart, createdAt, updatedAt sql.NullTime
			price, deposit                  sql.NullFloat64
			notes                           sql.NullString
		)
		d := &booking.Details

		err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			pq.Array(&booking.ServiceIDs),
			&slotStart,
			&booking.DurationMinutes,
			&booking.Status,
			&booking.Zone,
			&booking.DriveTimeMinutes,
			&booking.TravelBufferMinutes,
			&price,
			&deposit,
			&d.Name,
			&d.Email,
			&d.Phone,
			&d.Postcode,
			&d.AddressLine1,
			&d.Town,
			&d.VehicleRegistration,
			&d.VehicleMake,
			&d.VehicleModel,
			&d.Mileage,
			&d.Symptoms,
			&notes,
			&d.SafeLocationConfirmed,
			&booking.PaymentSessionID,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}

		if slotStart.Valid {
			start := slotStart.Time
			booking.SlotStart = &start
		}
		if price.Valid {
			booking.PriceGBP = &price.Float64
		}
		if deposit.Valid {
			booking.DepositGBP = &deposit.Float64
		}
		d.Notes = notes.String
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

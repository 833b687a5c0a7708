package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/dbmetrics"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/psqlbuilder"
)

var reportColumns = []string{
	"id",
	"booking_id",
	"title",
	"vehicle_registration",
	"summary",
	"findings",
	"status",
	"share_token",
	"published_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий диагностических отчетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отчетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает черновик отчета
func (r *Repository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	findings, err := encodeFindings(report.Findings)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncodeFindings, err)
	}

	query, args, err := psqlbuilder.Insert("reports").
		Columns("booking_id", "title", "vehicle_registration", "summary", "findings", "status").
		Values(nullInt64(report.BookingID), report.Title, report.VehicleRegistration, report.Summary, findings, string(domain.ReportDraft)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *report
	created.Status = domain.ReportDraft
	created.ShareToken = nil
	created.PublishedAt = nil

	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - scan returning: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// GetByID получает отчет по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByShareToken получает опубликованный отчет по токену ссылки
func (r *Repository) GetByShareToken(ctx context.Context, token string) (*domain.Report, error) {
	return r.getOne(ctx, "GetByShareToken", squirrel.Eq{
		"share_token": token,
		"status":      string(domain.ReportPublished),
	})
}

// List получает отчеты, новые первыми; bookingID опционален
func (r *Repository) List(ctx context.Context, bookingID *int64) ([]domain.Report, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reportColumns...).
		From("reports").
		OrderBy("created_at DESC")
	if bookingID != nil {
		builder = builder.Where(squirrel.Eq{"booking_id": *bookingID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReports(rows)
}

// Update обновляет содержимое отчета (статус и токен не меняются)
func (r *Repository) Update(ctx context.Context, report *domain.Report) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	findings, err := encodeFindings(report.Findings)
	if err != nil {
		return fmt.Errorf("%w: Update - %v", ErrEncodeFindings, err)
	}

	query, args, err := psqlbuilder.Update("reports").
		Set("booking_id", nullInt64(report.BookingID)).
		Set("title", report.Title).
		Set("vehicle_registration", report.VehicleRegistration).
		Set("summary", report.Summary).
		Set("findings", findings).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": report.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Update", query, args)
}

// Publish помечает отчет опубликованным и сохраняет токен ссылки
func (r *Repository) Publish(ctx context.Context, id int64, token string, publishedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reports").
		Set("status", string(domain.ReportPublished)).
		Set("share_token", token).
		Set("published_at", publishedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Publish - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Publish", query, args)
}

// Delete удаляет отчет
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reports").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Report, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reportColumns...).
		From("reports").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reports, err := scanReports(rows)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, ErrReportNotFound
	}

	return &reports[0], nil
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrReportNotFound
	}

	return nil
}

func scanReports(rows *sql.Rows) ([]domain.Report, error) {
	reports := make([]domain.Report, 0)

	for rows.Next() {
		var (
			rep         domain.Report
			bookingID   sql.NullInt64
			rawFindings []byte
			status      string
			shareToken  sql.NullString
			publishedAt sql.NullTime
		)

		err := rows.Scan(
			&rep.ID,
			&bookingID,
			&rep.Title,
			&rep.VehicleRegistration,
			&rep.Summary,
			&rawFindings,
			&status,
			&shareToken,
			&publishedAt,
			&rep.CreatedAt,
			&rep.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReports - scan row: %v", ErrScanRow, err)
		}

		rep.Status = domain.ReportStatus(status)
		if bookingID.Valid {
			rep.BookingID = &bookingID.Int64
		}
		if shareToken.Valid {
			rep.ShareToken = &shareToken.String
		}
		if publishedAt.Valid {
			rep.PublishedAt = &publishedAt.Time
		}

		rep.Findings = make([]domain.Finding, 0)
		if len(rawFindings) > 0 {
			if err := json.Unmarshal(rawFindings, &rep.Findings); err != nil {
				return nil, fmt.Errorf("%w: scanReports - decode findings: %v", ErrScanRow, err)
			}
		}

		reports = append(reports, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReports - rows error: %v", ErrScanRow, err)
	}

	return reports, nil
}

func encodeFindings(findings []domain.Finding) ([]byte, error) {
	if findings == nil {
		findings = []domain.Finding{}
	}
	return json.Marshal(findings)
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

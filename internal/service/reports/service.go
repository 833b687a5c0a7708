package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MobileDiagnostics/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/events"
	reportRepo "github.com/m04kA/SMC-MobileDiagnostics/internal/infra/storage/report"
)

// Service сервис диагностических отчетов
type Service struct {
	reportRepo ReportRepository
	bookings   BookingLookup
	publisher  EventPublisher
	logger     Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(reportRepo ReportRepository, bookings BookingLookup, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		reportRepo: reportRepo,
		bookings:   bookings,
		publisher:  publisher,
		logger:     logger,
	}
}

// Create создает черновик отчета
func (s *Service) Create(ctx context.Context, input ReportInput) (*domain.Report, error) {
	report, err := s.buildReport(ctx, input)
	if err != nil {
		return nil, err
	}

	created, err := s.reportRepo.Create(ctx, report)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created report id=%d", created.ID)
	return created, nil
}

// GetByID получает отчет по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", err)
	}
	return report, nil
}

// List получает отчеты, опционально по бронированию
func (s *Service) List(ctx context.Context, bookingID *int64) ([]domain.Report, error) {
	reports, err := s.reportRepo.List(ctx, bookingID)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return reports, nil
}

// Update заменяет содержимое отчета
func (s *Service) Update(ctx context.Context, id int64, input ReportInput) (*domain.Report, error) {
	report, err := s.buildReport(ctx, input)
	if err != nil {
		return nil, err
	}
	report.ID = id

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, s.mapRepoError("Update", err)
	}

	return s.GetByID(ctx, id)
}

// Publish публикует отчет и выдает токен ссылки
// Повторная публикация возвращает уже выданный токен
func (s *Service) Publish(ctx context.Context, id int64) (*domain.Report, error) {
	report, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.IsPublished() {
		return report, nil
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := s.reportRepo.Publish(ctx, id, token, time.Now().UTC()); err != nil {
		return nil, s.mapRepoError("Publish", err)
	}

	published, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event := events.ReportPublishedEvent{
		ReportID:   published.ID,
		BookingID:  published.BookingID,
		ShareToken: token,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, events.ReportPublished, event); err != nil {
		s.logger.Warn("Publish: failed to publish event for report id=%d: %v", id, err)
	}

	s.logger.Info("Publish: report id=%d published", id)
	return published, nil
}

// GetShared получает опубликованный отчет по токену
func (s *Service) GetShared(ctx context.Context, token string) (*domain.Report, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrReportNotFound
	}

	report, err := s.reportRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, s.mapRepoError("GetShared", err)
	}
	return report, nil
}

func (s *Service) buildReport(ctx context.Context, input ReportInput) (*domain.Report, error) {
	// 1. Валидация входных данных
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, maxTitleLength)
	}
	if len([]rune(input.Summary)) > maxSummaryLength {
		return nil, fmt.Errorf("%w: summary must be at most %d characters", ErrInvalidInput, maxSummaryLength)
	}
	if len(input.Findings) > maxFindingsPerRep {
		return nil, fmt.Errorf("%w: at most %d findings", ErrInvalidInput, maxFindingsPerRep)
	}

	findings := make([]domain.Finding, 0, len(input.Findings))
	for i, f := range input.Findings {
		f.Title = strings.TrimSpace(f.Title)
		if f.Title == "" {
			return nil, fmt.Errorf("%w: finding %d has no title", ErrInvalidInput, i+1)
		}
		if f.Severity == "" {
			f.Severity = domain.SeverityAdvisory
		}
		if !f.Severity.IsValid() {
			return nil, fmt.Errorf("%w: finding %d has unknown severity %q", ErrInvalidInput, i+1, f.Severity)
		}
		findings = append(findings, f)
	}

	// 2. Проверка бронирования
	if input.BookingID != nil {
		if _, err := s.bookings.GetByID(ctx, *input.BookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return nil, ErrBookingNotFound
			}
			s.logger.Error("buildReport: booking id=%d lookup failed: %v", *input.BookingID, err)
			return nil, fmt.Errorf("%w: buildReport - booking lookup: %v", ErrInternal, err)
		}
	}

	return &domain.Report{
		BookingID:           input.BookingID,
		Title:               title,
		VehicleRegistration: strings.ToUpper(strings.TrimSpace(input.VehicleRegistration)),
		Summary:             strings.TrimSpace(input.Summary),
		Findings:            findings,
	}, nil
}

func (s *Service) mapRepoError(op string, err error) error {
	if errors.Is(err, reportRepo.ErrReportNotFound) {
		return ErrReportNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

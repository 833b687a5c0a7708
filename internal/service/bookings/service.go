package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MobileDiagnostics/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/events"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/bookings/models"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/txmanager"
)

// Service сервис бронирований для админки
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	publisher   EventPublisher
	maxVisits   int
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	maxConcurrentBookings int,
	location *time.Location,
	logger Logger,
) *Service {
	if maxConcurrentBookings < 1 {
		maxConcurrentBookings = 1
	}
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		publisher:   publisher,
		maxVisits:   maxConcurrentBookings,
		location:    location,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return booking, nil
}

// List получает бронирования с фильтрацией
//
// Примеры:
// - Все активные: List(ctx, &ListBookingsRequest{})
// - На неделю: указать From и To
// - Ожидают ручной проверки: Status = "pending_manual_review"
// - Поиск по номеру авто: Query = "AB12"
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) ([]*domain.Booking, error) {
	filter, err := req.ToDomainFilter(s.location)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return bookings, nil
}

// UpdateStatus меняет статус бронирования по таблице допустимых переходов
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*domain.Booking, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	// 1. Валидация входных данных
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, ErrInvalidStatus
	}

	reason := strings.TrimSpace(req.Reason)
	if len([]rune(reason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var (
		previous domain.BookingStatus
		updated  *domain.Booking
	)

	// 2. Проверка перехода и обновление в одной сериализуемой транзакции
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if !booking.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
				booking.Status, newStatus, bookingID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}
		previous = booking.Status

		// 3. Подтвержденная заявка с желаемым временем начинает занимать слот
		if newStatus == domain.StatusConfirmed && !booking.BlocksSlot() && booking.SlotStart != nil {
			if err := s.checkCapacity(ctx, booking); err != nil {
				return err
			}
		}

		var reasonPtr *string
		if newStatus == domain.StatusCancelled && reason != "" {
			reasonPtr = &reason
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus, reasonPtr); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		updated, err = s.GetByID(ctx, bookingID)
		return err
	})
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			s.logger.Warn("UpdateStatus: concurrent update of booking id=%d", bookingID)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	// 4. Событие публикуется после фиксации
	event := events.BookingStatusChangedEvent{
		BookingID:  updated.ID,
		Reference:  updated.Reference,
		From:       string(previous),
		To:         string(updated.Status),
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, events.BookingStatusChanged, event); err != nil {
		s.logger.Warn("UpdateStatus: failed to publish event for booking id=%d: %v", bookingID, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d moved %s -> %s", bookingID, previous, updated.Status)
	return updated, nil
}

// checkCapacity повторяет проверку пересечений, как при бронировании через сайт
func (s *Service) checkCapacity(ctx context.Context, booking *domain.Booking) error {
	start := *booking.SlotStart
	end := start.Add(time.Duration(booking.DurationMinutes) * time.Minute)

	blocking, err := s.bookingRepo.FindBlocking(ctx, start, end)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to get bookings for id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: FindBlocking - repository error: %w", ErrInternal, err)
	}

	overlapping := 0
	for _, b := range blocking {
		if b.ID != booking.ID && b.BlocksSlot() && b.Overlaps(start, end) {
			overlapping++
		}
	}

	if overlapping >= s.maxVisits {
		s.logger.Warn("UpdateStatus: booking id=%d overlaps %d/%d visits", booking.ID, overlapping, s.maxVisits)
		return ErrSlotTaken
	}
	return nil
}

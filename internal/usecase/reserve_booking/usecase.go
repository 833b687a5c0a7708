package reserve_booking

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
	"github.com/m04kA/SMC-MobileDiagnostics/internal/usecase/get_availability"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/txmanager"
)

// UseCase use case для бронирования визита
type UseCase struct {
	bookingRepo  BookingRepository
	availability AvailabilityUseCase
	payments     PaymentService
	publisher    EventPublisher
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	newReference func() string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityUseCase,
	payments PaymentService,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		availability: availability,
		payments:     payments,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		newReference: generateReference,
	}
}

// Execute выполняет use case бронирования
// Ошибки валидации доступности (индекс, услуги) возвращаются из get_availability как есть
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveBooking: services=%v, slot=%v, postcode=%s", req.ServiceIDs, req.Slot, req.Details.Postcode)

	// 1. Валидация входных данных
	req.Details = normalizeDetails(req.Details)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Пересчитываем цену и слоты на сервере
	availability, err := uc.availability.Execute(ctx, &get_availability.Request{
		Postcode:   req.Details.Postcode,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		if errors.Is(err, get_availability.ErrInternal) {
			return nil, fmt.Errorf("%w: availability: %v", ErrInternal, err)
		}
		return nil, err
	}

	// 3. Собираем бронирование
	booking := uc.newBooking(req, availability)

	// 4. Проверяем слот для обычной записи
	if !availability.ManualReviewRequired {
		if req.Slot == nil {
			return nil, ErrSlotRequired
		}
		if !availability.OffersSlot(*req.Slot) {
			uc.logger.Warn("ReserveBooking: slot %s is not offered", req.Slot.Format(time.RFC3339))
			return nil, ErrSlotNotOffered
		}
	}

	// 5. Сохраняем в сериализуемой транзакции с повторной проверкой пересечений
	created, err := uc.store(ctx, booking)
	if err != nil {
		return nil, err
	}

	// 6. Депозит оформляется после фиксации транзакции
	resp := &Response{
		BookingID: created.ID,
		Status:    created.Status,
		Reference: created.Reference,
	}

	switch created.Status {
	case domain.StatusPendingDeposit:
		paymentURL, err := uc.startCheckout(ctx, created)
		if err != nil {
			return nil, err
		}
		resp.PaymentURL = paymentURL
		resp.Message = MsgPendingDeposit
	case domain.StatusPendingManualReview:
		resp.Message = MsgManualReview
	default:
		resp.Message = MsgConfirmed
	}

	// 7. Событие о новом бронировании
	event := events.NewBookingCreated(created, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, events.BookingCreated, event); err != nil {
		uc.logger.Warn("ReserveBooking: failed to publish event for %s: %v", created.Reference, err)
	}

	uc.metrics.ObserveReservation(string(created.Status))
	uc.logger.Info("ReserveBooking: created booking id=%d ref=%s status=%s", created.ID, created.Reference, created.Status)

	return resp, nil
}

func (uc *UseCase) newBooking(req *Request, availability *domain.AvailabilityResult) *domain.Booking {
	details := req.Details
	details.Postcode = availability.Postcode

	booking := &domain.Booking{
		ServiceIDs:          req.ServiceIDs,
		DurationMinutes:     availability.TotalDurationMinutes,
		Zone:                availability.Zone,
		DriveTimeMinutes:    availability.DriveTimeMinutes,
		TravelBufferMinutes: availability.TravelBufferMinutes,
		Details:             details,
	}

	if req.Slot != nil {
		slot := req.Slot.UTC()
		booking.SlotStart = &slot
	}

	if availability.ManualReviewRequired {
		booking.Status = domain.StatusPendingManualReview
		return booking
	}

	if amount, ok := availability.Price.Amount(); ok {
		booking.PriceGBP = &amount
	}
	booking.DepositGBP = availability.Deposit

	booking.Status = domain.StatusConfirmed
	if booking.DepositGBP != nil {
		booking.Status = domain.StatusPendingDeposit
	}

	return booking
}

func (uc *UseCase) store(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if booking.BlocksSlot() {
			end := booking.SlotStart.Add(time.Duration(booking.DurationMinutes) * time.Minute)

			blocking, err := uc.bookingRepo.FindBlocking(txCtx, *booking.SlotStart, end)
			if err != nil {
				uc.logger.Error("ReserveBooking: failed to get bookings: %v", err)
				return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
			}

			overlapping := 0
			for _, b := range blocking {
				if b.BlocksSlot() && b.Overlaps(*booking.SlotStart, end) {
					overlapping++
				}
			}

			limit := uc.availability.MaxConcurrentBookings()
			if overlapping >= limit {
				uc.logger.Warn("ReserveBooking: slot taken, %d/%d visits overlap", overlapping, limit)
				return ErrSlotTaken
			}
		}

		for attempt := 1; ; attempt++ {
			booking.Reference = uc.newReference()

			var err error
			created, err = uc.bookingRepo.Create(txCtx, booking)
			if err == nil {
				return nil
			}
			if errors.Is(err, bookingRepo.ErrDuplicateReference) && attempt < referenceAttempts {
				uc.logger.Warn("ReserveBooking: reference collision on %s, retrying", booking.Reference)
				continue
			}
			uc.logger.Error("ReserveBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
	})
	if err != nil {
		// 40001 может прийти как от запроса внутри транзакции, так и от commit
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("ReserveBooking: serialization conflict, slot taken")
			return nil, ErrSlotTaken
		}
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	}

	return created, nil
}

// startCheckout создает оплату; при ошибке отменяет бронирование, освобождая слот
func (uc *UseCase) startCheckout(ctx context.Context, booking *domain.Booking) (string, error) {
	checkout, err := uc.payments.CreateDepositCheckout(ctx, booking)
	if err != nil {
		uc.logger.Error("ReserveBooking: checkout failed for %s: %v", booking.Reference, err)

		reason := checkoutFailure
		if cancelErr := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusCancelled, &reason); cancelErr != nil {
			uc.logger.Error("ReserveBooking: failed to cancel booking id=%d after checkout failure: %v", booking.ID, cancelErr)
		}
		uc.metrics.ObserveReservation("payment_failed")
		return "", fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	if err := uc.bookingRepo.SetPaymentSession(ctx, booking.ID, checkout.SessionID); err != nil {
		uc.logger.Error("ReserveBooking: failed to store payment session for id=%d: %v", booking.ID, err)
	}
	booking.PaymentSessionID = &checkout.SessionID

	return checkout.URL, nil
}

// generateReference короткий номер бронирования вида MD-7F3A9C21
func generateReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return referencePrefix + strings.ToUpper(id[:8])
}

type nopMetrics struct{}

func (nopMetrics) ObserveReservation(string) {}

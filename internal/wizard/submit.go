package wizard

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/bookingapi"
)

// OutcomeKind чем закончилась отправка
type OutcomeKind int

const (
	// OutcomeRedirected пользователь отправлен на оплату депозита, черновик не сброшен
	OutcomeRedirected OutcomeKind = iota + 1
	// OutcomeManualReview заявка ждет ручной проверки, черновик сброшен
	OutcomeManualReview
	// OutcomeSubmitted бронь принята, черновик сброшен
	OutcomeSubmitted
)

// SubmitResult результат успешной отправки
type SubmitResult struct {
	Kind       OutcomeKind
	Reference  string
	Message    string
	PaymentURL string
}

// Submit проверяет черновик и отправляет бронирование.
// Повторный вызов во время отправки возвращает ErrActionInProgress без сетевого запроса.
func (c *Controller) Submit(ctx context.Context) (*SubmitResult, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrActionInProgress
	}

	// 1. Проверки до отправки
	if err := c.validateLocked(); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	// 2. Готовим бронирование и помечаем действие как выполняющееся
	draft := c.draft.clone()
	c.submitting = true
	c.message = ""
	c.mu.Unlock()

	outcome, err := c.api.Reserve(ctx, bookingapi.Reservation{
		ServiceIDs: draft.ServiceIDs,
		Slot:       draft.Slot,
		Details:    draft.Details,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	// 3. Ошибка - черновик сохраняется для исправления и повторной отправки
	if err != nil {
		if detail, ok := bookingapi.Detail(err); ok {
			c.message = detail
		} else {
			c.message = MsgBookingFailed
		}
		c.log.Warn("Submit: reservation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBookingFailed, err)
	}

	result := &SubmitResult{Reference: outcome.Reference, Message: outcome.Message, PaymentURL: outcome.PaymentURL}

	// 4. Ветвление по статусу сервера
	switch {
	case outcome.Status == domain.StatusPendingDeposit && outcome.PaymentURL != "":
		result.Kind = OutcomeRedirected
		c.log.Info("Submit: booking %s awaiting deposit, redirecting", outcome.Reference)
		if err := c.navigator.Redirect(outcome.PaymentURL); err != nil {
			c.log.Error("Submit: redirect to payment failed: %v", err)
			return result, fmt.Errorf("%w: redirect: %v", ErrBookingFailed, err)
		}
		return result, nil

	case outcome.Status == domain.StatusPendingManualReview:
		result.Kind = OutcomeManualReview
		if result.Message == "" {
			result.Message = MsgManualReviewDefault
		}

	default:
		result.Kind = OutcomeSubmitted
		if result.Message == "" {
			result.Message = MsgBookingSubmitted
		}
	}

	c.log.Info("Submit: booking %s status=%s", outcome.Reference, outcome.Status)
	c.resetLocked()
	c.message = result.Message

	return result, nil
}

// validateLocked проверяет слот, затем все поля разом, затем подтверждение места
func (c *Controller) validateLocked() error {
	manualReview := c.availability != nil && c.availability.ManualReviewRequired
	if c.draft.Slot == nil && !manualReview {
		c.message = MsgChooseSlot
		return ErrSlotRequired
	}

	if missing := c.draft.Details.MissingFields(); len(missing) > 0 {
		c.message = domain.MissingFieldsMessage(missing)
		return fmt.Errorf("%w: %v", ErrIncompleteDetails, missing)
	}

	if !c.draft.Details.SafeLocationConfirmed {
		c.message = domain.SafeLocationMessage
		return ErrSafeLocationUnconfirmed
	}

	return nil
}

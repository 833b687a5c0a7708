package reserve_booking

import (
	"errors"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_booking: invalid input data")

	// ErrIncompleteDetails возвращается, если не заполнены обязательные поля
	ErrIncompleteDetails = errors.New("reserve_booking: incomplete details")

	// ErrSafeLocationUnconfirmed возвращается без подтверждения безопасного места
	ErrSafeLocationUnconfirmed = errors.New("reserve_booking: safe location not confirmed")

	// ErrSlotRequired возвращается, если слот не выбран для зоны A-C
	ErrSlotRequired = errors.New("reserve_booking: slot is required")

	// ErrSlotNotOffered возвращается, если слота нет среди доступных
	ErrSlotNotOffered = errors.New("reserve_booking: slot is no longer offered")

	// ErrSlotTaken возвращается, если слот заняли параллельно
	ErrSlotTaken = errors.New("reserve_booking: slot has just been taken")

	// ErrPaymentUnavailable возвращается, если не удалось создать оплату депозита
	ErrPaymentUnavailable = errors.New("reserve_booking: deposit checkout failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_booking: internal error")
)

// IncompleteDetailsError перечень незаполненных полей
type IncompleteDetailsError struct {
	Missing []string
}

func (e *IncompleteDetailsError) Error() string {
	return domain.MissingFieldsMessage(e.Missing)
}

func (e *IncompleteDetailsError) Unwrap() error {
	return ErrIncompleteDetails
}

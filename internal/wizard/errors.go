package wizard

import "errors"

var (
	// ErrActionInProgress такое же действие уже выполняется
	ErrActionInProgress = errors.New("wizard: action in progress")

	// ErrSlotRequired не выбран слот (и ручная проверка не требуется)
	ErrSlotRequired = errors.New("wizard: slot required")

	// ErrSlotNotOffered выбранное время отсутствует среди доступных слотов
	ErrSlotNotOffered = errors.New("wizard: slot not offered")

	// ErrIncompleteDetails не заполнены или неверны обязательные поля
	ErrIncompleteDetails = errors.New("wizard: incomplete details")

	// ErrSafeLocationUnconfirmed не подтверждено безопасное место
	ErrSafeLocationUnconfirmed = errors.New("wizard: safe location not confirmed")

	// ErrCatalogUnavailable не удалось загрузить каталог услуг
	ErrCatalogUnavailable = errors.New("wizard: service catalog unavailable")

	// ErrLookupFailed не удалось получить доступность
	ErrLookupFailed = errors.New("wizard: availability lookup failed")

	// ErrBookingFailed бронирование отклонено или не отправлено
	ErrBookingFailed = errors.New("wizard: booking failed")
)

// Сообщения для пользователя
const (
	MsgCatalogFailed       = "We couldn't load our services. Please refresh the page and try again."
	MsgLookupFailed        = "Sorry, we couldn't check availability right now. Please try again."
	MsgChooseSlot          = "Please choose a time slot."
	MsgSlotNotOffered      = "That time is not available. Please choose another slot."
	MsgBookingFailed       = "Booking failed. Please try again or call us."
	MsgManualReviewDefault = "Thanks, we've received your request. We'll review it and be in touch shortly."
	MsgBookingSubmitted    = "Booking submitted. We'll email your confirmation shortly."
	MsgNoSlots             = "No slots available in the next 30 days. Please call us to arrange a visit."
)

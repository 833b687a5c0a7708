package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidStatus возвращается при попытке установить неизвестный статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition возвращается, если переход между статусами запрещен
	ErrInvalidTransition = errors.New("booking status transition not allowed")

	// ErrSlotTaken возвращается, если на время заявки уже нет свободной бригады
	ErrSlotTaken = errors.New("booking slot is fully booked")

	// ErrConcurrentUpdate возвращается при одновременном изменении бронирования
	ErrConcurrentUpdate = errors.New("booking was changed concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNoServices возвращается, когда не выбрано ни одной услуги
	ErrNoServices = errors.New("no services selected")

	// ErrTooManyServices возвращается при превышении лимита услуг в бронировании
	ErrTooManyServices = errors.New("too many services selected")

	// ErrUnknownService возвращается, когда услуги нет в каталоге
	ErrUnknownService = errors.New("unknown service")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// UnknownServiceError неизвестная услуга с её идентификатором
type UnknownServiceError struct {
	ID string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownService, e.ID)
}

func (e *UnknownServiceError) Unwrap() error {
	return ErrUnknownService
}

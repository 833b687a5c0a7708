package get_availability

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidPostcode возвращается для некорректного почтового индекса
	ErrInvalidPostcode = errors.New("invalid postcode")

	// ErrNotCovered возвращается, когда индекс вне зоны обслуживания
	ErrNotCovered = errors.New("postcode not covered")

	// ErrUnknownService возвращается, когда услуги нет в каталоге
	ErrUnknownService = errors.New("unknown service")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
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

package bookingapi

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport запрос не дошел до сервера или ответ не был получен
	ErrTransport = errors.New("bookingapi client: transport error")

	// ErrInvalidResponse ответ сервера не удалось разобрать
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")
)

// APIError ответ сервера с кодом не 2xx
// Detail - сообщение для пользователя из поля "detail" (может быть пустым)
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("bookingapi client: status %d", e.StatusCode)
	}
	return fmt.Sprintf("bookingapi client: status %d: %s", e.StatusCode, e.Detail)
}

// Detail возвращает сообщение сервера, если err - APIError с непустым detail
func Detail(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

package reports

import "errors"

var (
	// ErrReportNotFound возвращается, когда отчет не найден или не опубликован
	ErrReportNotFound = errors.New("report not found")

	// ErrBookingNotFound возвращается, когда отчет ссылается на несуществующее бронирование
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

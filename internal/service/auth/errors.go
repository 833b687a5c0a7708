package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidSession возвращается для отсутствующей, просроченной или подделанной сессии
	ErrInvalidSession = errors.New("invalid session")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

package middleware

import "time"

// SessionVerifier проверка токена админской сессии
type SessionVerifier interface {
	Verify(token string) (string, error)
}

// Metrics метрики HTTP запросов
type Metrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package events

import "context"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует событие в шину
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

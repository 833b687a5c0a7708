package payments

import "github.com/stripe/stripe-go/v76"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// sessionCreator создание Checkout Session (*session.Client из stripe-go)
type sessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

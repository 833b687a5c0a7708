package payments

import "errors"

var (
	// ErrNoDeposit возвращается, если у бронирования нет суммы депозита
	ErrNoDeposit = errors.New("payments: booking has no deposit")

	// ErrCheckoutFailed возвращается при ошибке создания Checkout Session
	ErrCheckoutFailed = errors.New("payments: failed to create checkout session")
)

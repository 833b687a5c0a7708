package payments

// Checkout созданная сессия оплаты депозита
type Checkout struct {
	SessionID string
	URL       string
}

// Config настройки Stripe Checkout
type Config struct {
	SecretKey  string
	Currency   string
	SuccessURL string // {reference} заменяется на номер бронирования
	CancelURL  string
	DryRun     bool
}

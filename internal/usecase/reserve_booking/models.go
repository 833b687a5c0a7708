package reserve_booking

import (
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// Сообщения клиенту по итогам бронирования
const (
	MsgPendingDeposit = "Your slot is held. Please pay the deposit to confirm your booking."
	MsgConfirmed      = "Thanks, your booking is confirmed. We've emailed you the details."
	MsgManualReview   = "Thanks, we've received your request. Your postcode is outside our usual area, so we'll review it and be in touch."
)

const (
	referencePrefix   = "MD-"
	referenceAttempts = 3
	checkoutFailure   = "Deposit checkout could not be started"
)

// Request модель запроса на бронирование
type Request struct {
	ServiceIDs []string
	Slot       *time.Time // для ручной проверки необязателен и сохраняется как пожелание клиента
	Details    domain.BookingDetails
}

// Response модель ответа с результатом бронирования
type Response struct {
	BookingID  int64
	Status     domain.BookingStatus
	Reference  string
	Message    string
	PaymentURL string
}

package events

import (
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// Ключи маршрутизации
const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	ReportPublished      = "report.published"
)

// BookingCreatedEvent новое бронирование
type BookingCreatedEvent struct {
	BookingID  int64      `json:"booking_id"`
	Reference  string     `json:"reference"`
	Status     string     `json:"status"`
	ServiceIDs []string   `json:"service_ids"`
	SlotStart  *time.Time `json:"slot_start,omitempty"`
	Zone       string     `json:"zone"`
	Postcode   string     `json:"postcode"`
	Email      string     `json:"email"`
	PriceGBP   *float64   `json:"price_gbp,omitempty"`
	DepositGBP *float64   `json:"deposit_gbp,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewBookingCreated собирает событие по бронированию
func NewBookingCreated(b *domain.Booking, at time.Time) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID:  b.ID,
		Reference:  b.Reference,
		Status:     string(b.Status),
		ServiceIDs: b.ServiceIDs,
		SlotStart:  b.SlotStart,
		Zone:       string(b.Zone),
		Postcode:   b.Details.Postcode,
		Email:      b.Details.Email,
		PriceGBP:   b.PriceGBP,
		DepositGBP: b.DepositGBP,
		OccurredAt: at.UTC(),
	}
}

// BookingStatusChangedEvent смена статуса из админки
type BookingStatusChangedEvent struct {
	BookingID  int64     `json:"booking_id"`
	Reference  string    `json:"reference"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReportPublishedEvent публикация диагностического отчета
type ReportPublishedEvent struct {
	ReportID   int64     `json:"report_id"`
	BookingID  *int64    `json:"booking_id,omitempty"`
	ShareToken string    `json:"share_token"`
	OccurredAt time.Time `json:"occurred_at"`
}

package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPendingDeposit      BookingStatus = "pending_deposit"
	StatusPendingManualReview BookingStatus = "pending_manual_review"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelled           BookingStatus = "cancelled"
	StatusNoShow              BookingStatus = "no_show"
)

// allowedTransitions допустимые переходы статусов из админки
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingDeposit:      {StatusConfirmed, StatusCancelled},
	StatusPendingManualReview: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:           {StatusCompleted, StatusCancelled, StatusNoShow},
}

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPendingDeposit, StatusPendingManualReview, StatusConfirmed,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether an admin may move a booking from s to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking represents a reservation for a mobile diagnostic visit
type Booking struct {
	ID         int64
	Reference  string
	ServiceIDs []string

	// SlotStart is nil for manual review bookings without a preferred time
	SlotStart       *time.Time
	DurationMinutes int
	Status          BookingStatus

	// Trip and price snapshot at booking time
	Zone                ZoneID
	DriveTimeMinutes    int
	TravelBufferMinutes int
	PriceGBP            *float64 // nil = quote required
	DepositGBP          *float64

	Details BookingDetails

	PaymentSessionID   *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot returns true if the booking occupies its slot in the calendar
func (b *Booking) BlocksSlot() bool {
	return b.SlotStart != nil && (b.Status == StatusPendingDeposit || b.Status == StatusConfirmed)
}

// IsActive returns true if the booking has not reached a final state
func (b *Booking) IsActive() bool {
	return b.Status == StatusPendingDeposit ||
		b.Status == StatusPendingManualReview ||
		b.Status == StatusConfirmed
}

// Overlaps returns true if the booking's interval strictly intersects [start, end).
// Adjacent intervals do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	if b.SlotStart == nil {
		return false
	}
	bookingEnd := b.SlotStart.Add(time.Duration(b.DurationMinutes) * time.Minute)
	return b.SlotStart.Before(end) && bookingEnd.After(start)
}

// BookingsFilter фильтр для списка бронирований в админке
type BookingsFilter struct {
	Status          *BookingStatus // Фильтр по статусу (опционально)
	From            *time.Time     // Начало периода по slot_start (опционально)
	To              *time.Time     // Конец периода по slot_start, не включая (опционально)
	Query           string         // Поиск по reference, имени, email, номеру авто
	IncludeInactive bool           // Включать ли завершенные и отмененные
}

package domain

// Default booking rules
const (
	DefaultHorizonDays           = 30
	DefaultSlotStepMinutes       = 30
	DefaultTravelBufferStep      = 15
	DefaultMaxConcurrentBookings = 1
)

// Business validation constants
const (
	MaxNotesLength              = 1000
	MaxSymptomsLength           = 2000
	MaxCancellationReasonLength = 500
	MaxServicesPerBooking       = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SlotBlockingStatuses статусы, занимающие слот в календаре
// Используется при подсчёте пересечений
var SlotBlockingStatuses = []BookingStatus{
	StatusPendingDeposit,
	StatusConfirmed,
}

// InactiveStatuses финальные статусы, скрытые из списка по умолчанию
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

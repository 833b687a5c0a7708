package get_availability

import (
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/pkg/types"
)

// Request модель запроса доступности
type Request struct {
	Postcode   string   // Почтовый индекс клиента в любом регистре
	ServiceIDs []string // Выбранные услуги
}

// DayHours рабочие часы дня
type DayHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// Settings правила расчета слотов и цен
type Settings struct {
	Location              *time.Location
	HorizonDays           int
	SlotStepMinutes       int
	TravelBufferStep      int
	MaxConcurrentBookings int
	WorkingHours          map[time.Weekday]DayHours // отсутствие дня = выходной

	PaymentsEnabled bool
	DepositGBP      float64
}

package wizard

import (
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// Step шаг мастера бронирования
type Step int

const (
	StepServiceAndLocation Step = 1
	StepChooseSlot         Step = 2
	StepDetails            Step = 3
)

func (s Step) String() string {
	switch s {
	case StepServiceAndLocation:
		return "Service & location"
	case StepChooseSlot:
		return "Choose a slot"
	case StepDetails:
		return "Your details"
	default:
		return "Unknown"
	}
}

// DeriveStep вычисляет шаг только из наличия доступности и выбранного слота.
// Ручная проверка сразу ведет к шагу с данными клиента.
func DeriveStep(availability *domain.AvailabilityResult, slot *time.Time) Step {
	switch {
	case slot != nil:
		return StepDetails
	case availability != nil && availability.ManualReviewRequired:
		return StepDetails
	case availability != nil:
		return StepChooseSlot
	default:
		return StepServiceAndLocation
	}
}

// Direction направление анимации перехода
type Direction int

const (
	Forward Direction = iota
	Back
)

func (d Direction) String() string {
	if d == Back {
		return "back"
	}
	return "forward"
}

// DirectionOf сравнивает шаги; без изменения шага считается Forward
func DirectionOf(prev, next Step) Direction {
	if next < prev {
		return Back
	}
	return Forward
}

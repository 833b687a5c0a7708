package wizard

import (
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// BookingDraft бронирование в процессе заполнения
type BookingDraft struct {
	ServiceIDs []string
	Slot       *time.Time
	Details    domain.BookingDetails
}

// NewDraft пустой черновик
func NewDraft() BookingDraft {
	return BookingDraft{ServiceIDs: []string{}}
}

func (d BookingDraft) clone() BookingDraft {
	out := d
	out.ServiceIDs = append([]string(nil), d.ServiceIDs...)
	if d.Slot != nil {
		slot := *d.Slot
		out.Slot = &slot
	}
	return out
}

package wizard

import (
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/calendar"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// View снимок состояния мастера для отображения
type View struct {
	Step      Step
	Direction Direction
	Message   string

	Services     []domain.Service
	Draft        BookingDraft
	Availability *domain.AvailabilityResult

	Days      []calendar.DayGroup
	DateIndex int
	Grid      calendar.MonthGrid

	// NoSlots доступность получена, ручная проверка не нужна, но слотов нет
	NoSlots bool

	LoadingServices bool
	LoadingSlots    bool
	Submitting      bool
}

// CurrentDay выбранная в навигаторе дата
func (v View) CurrentDay() (calendar.DayGroup, bool) {
	if v.DateIndex < 0 || v.DateIndex >= len(v.Days) {
		return calendar.DayGroup{}, false
	}
	return v.Days[v.DateIndex], true
}

// View возвращает копию текущего состояния
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Step:            c.step,
		Direction:       c.direction,
		Message:         c.message,
		Services:        append([]domain.Service(nil), c.services...),
		Draft:           c.draft.clone(),
		Availability:    c.availability,
		Days:            c.days,
		DateIndex:       c.dateIndex,
		Grid:            calendar.BuildMonthGrid(c.days),
		LoadingServices: c.loadingServices,
		LoadingSlots:    c.loadingSlots,
		Submitting:      c.submitting,
	}
	if c.availability != nil && !c.availability.ManualReviewRequired && len(c.days) == 0 {
		v.NoSlots = true
		if v.Message == "" {
			v.Message = MsgNoSlots
		}
	}
	return v
}

// Summary итог бронирования на шаге с данными клиента
type Summary struct {
	Services      []string
	When          string
	Zone          domain.ZoneID
	Price         string
	Deposit       string
	TotalDuration int
	ManualReview  bool
}

// Summary собирает итог из каталога, черновика и доступности
func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{Services: domain.ServiceLabels(c.services, c.draft.ServiceIDs)}

	if a := c.availability; a != nil {
		s.Zone = a.Zone
		s.Price = a.Price.String()
		s.TotalDuration = a.TotalDurationMinutes
		s.ManualReview = a.ManualReviewRequired
		if a.Deposit != nil {
			s.Deposit = domain.FormatGBP(*a.Deposit)
		}
	}

	switch {
	case c.draft.Slot != nil:
		s.When = FormatSlot(*c.draft.Slot, c.loc)
	case s.ManualReview:
		s.When = "To be arranged after review"
	}

	return s
}

// FormatSlot "Mon 19 Oct, 09:30"
func FormatSlot(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon 2 Jan, 15:04")
}

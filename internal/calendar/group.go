package calendar

import (
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// MaxDates максимальное количество дат в навигаторе
const MaxDates = 30

const labelLayout = "Mon 2 Jan"

// CellState состояние ячейки календаря
type CellState int

const (
	CellNoData CellState = iota
	CellAvailable
	CellFullyBooked
)

func (s CellState) String() string {
	switch s {
	case CellAvailable:
		return "available"
	case CellFullyBooked:
		return "fully booked"
	default:
		return "no data"
	}
}

// DayGroup слоты одной календарной даты
type DayGroup struct {
	Key          string    // YYYY-MM-DD в часовом поясе отображения
	Date         time.Time // полночь этой даты
	Label        string    // "Mon 19 Oct"
	Slots        []domain.Slot
	HasAvailable bool
	HasTaken     bool
}

// State состояние ячейки для этой даты
func (g DayGroup) State() CellState {
	switch {
	case g.HasAvailable:
		return CellAvailable
	case g.HasTaken:
		return CellFullyBooked
	default:
		return CellNoData
	}
}

// Group раскладывает слоты по датам в порядке их следования.
// Ключ даты и подпись считаются из одного и того же времени (slot.Start в loc).
// Когда набрано MaxDates дат, слоты с новых дат отбрасываются,
// а слоты уже открытых дат продолжают добавляться.
func Group(slots []domain.Slot, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.UTC
	}

	groups := make([]DayGroup, 0)
	index := make(map[string]int)

	for _, slot := range slots {
		local := slot.Start.In(loc)
		key := local.Format(domain.DateFormat)

		i, ok := index[key]
		if !ok {
			if len(groups) >= MaxDates {
				continue
			}
			y, m, d := local.Date()
			groups = append(groups, DayGroup{
				Key:   key,
				Date:  time.Date(y, m, d, 0, 0, 0, 0, loc),
				Label: local.Format(labelLayout),
			})
			i = len(groups) - 1
			index[key] = i
		}

		g := &groups[i]
		g.Slots = append(g.Slots, slot)
		if slot.Available {
			g.HasAvailable = true
		} else {
			g.HasTaken = true
		}
	}

	return groups
}

// Keys упорядоченный список ключей дат
func Keys(groups []DayGroup) []string {
	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	return keys
}

// IndexOf позиция даты в списке, -1 если её нет
func IndexOf(groups []DayGroup, key string) int {
	for i, g := range groups {
		if g.Key == key {
			return i
		}
	}
	return -1
}

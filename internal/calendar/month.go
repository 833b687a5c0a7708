package calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// Cell ячейка сетки календаря; пустые ячейки выравнивают первую неделю
type Cell struct {
	Empty bool
	Key   string
	Day   int
	State CellState
}

// MonthGrid сетка 7 колонок, неделя начинается с понедельника
type MonthGrid struct {
	Title string
	Weeks [][]Cell
}

// BuildMonthGrid строит сетку от первой до последней даты.
// Даты между ними без слотов попадают в сетку как CellNoData.
func BuildMonthGrid(groups []DayGroup) MonthGrid {
	if len(groups) == 0 {
		return MonthGrid{}
	}

	states := make(map[string]CellState, len(groups))
	for _, g := range groups {
		states[g.Key] = g.State()
	}

	first := groups[0].Date
	last := groups[len(groups)-1].Date
	for _, g := range groups {
		if g.Date.After(last) {
			last = g.Date
		}
	}

	cells := make([]Cell, 0, 42)
	for i := 0; i < mondayOffset(first.Weekday()); i++ {
		cells = append(cells, Cell{Empty: true})
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(domain.DateFormat)
		cells = append(cells, Cell{Key: key, Day: d.Day(), State: states[key]})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{Empty: true})
	}

	weeks := make([][]Cell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}

	return MonthGrid{Title: rangeTitle(first, last), Weeks: weeks}
}

// mondayOffset количество пустых ячеек перед днем недели при старте недели с понедельника
func mondayOffset(day time.Weekday) int {
	return (int(day) + 6) % 7
}

// rangeTitle "October 2026" для одного месяца, "Oct – Nov 2026" для диапазона
func rangeTitle(first, last time.Time) string {
	if first.Year() == last.Year() && first.Month() == last.Month() {
		return first.Format("January 2006")
	}
	return fmt.Sprintf("%s – %s", first.Format("Jan"), last.Format("Jan 2006"))
}

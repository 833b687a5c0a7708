package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

func london(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	return loc
}

func slotsOn(loc *time.Location, day time.Time, hours []int, available bool) []domain.Slot {
	out := make([]domain.Slot, 0, len(hours))
	for _, h := range hours {
		out = append(out, domain.Slot{
			Start:     time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, loc),
			Available: available,
		})
	}
	return out
}

func TestGroup_ThreeDates(t *testing.T) {
	loc := london(t)
	var slots []domain.Slot
	for i := 0; i < 3; i++ {
		day := time.Date(2026, 10, 19+i, 0, 0, 0, 0, loc)
		slots = append(slots, slotsOn(loc, day, []int{9, 11, 13, 15}, true)...)
	}

	groups := Group(slots, loc)

	require.Len(t, groups, 3)
	assert.Equal(t, []string{"2026-10-19", "2026-10-20", "2026-10-21"}, Keys(groups))
	assert.Equal(t, "Mon 19 Oct", groups[0].Label)
	for _, g := range groups {
		assert.Len(t, g.Slots, 4)
		assert.Equal(t, CellAvailable, g.State())
	}
}

func TestGroup_Empty(t *testing.T) {
	groups := Group(nil, time.UTC)
	assert.Empty(t, groups)
	assert.Equal(t, MonthGrid{}, BuildMonthGrid(groups))
}

func TestGroup_Summary(t *testing.T) {
	loc := london(t)
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, loc)
	mixed := append(slotsOn(loc, day, []int{9}, false), slotsOn(loc, day, []int{11}, true)...)
	taken := slotsOn(loc, day.AddDate(0, 0, 1), []int{9, 11}, false)

	groups := Group(append(mixed, taken...), loc)

	require.Len(t, groups, 2)
	assert.True(t, groups[0].HasAvailable)
	assert.True(t, groups[0].HasTaken)
	assert.Equal(t, CellAvailable, groups[0].State())
	assert.False(t, groups[1].HasAvailable)
	assert.Equal(t, CellFullyBooked, groups[1].State())
}

func TestGroup_CapsDistinctDates(t *testing.T) {
	loc := time.UTC
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, loc)

	var slots []domain.Slot
	for i := 0; i < 35; i++ {
		slots = append(slots, slotsOn(loc, start.AddDate(0, 0, i), []int{10}, true)...)
	}
	// слот уже открытой даты после достижения лимита
	slots = append(slots, slotsOn(loc, start, []int{16}, true)...)

	groups := Group(slots, loc)

	require.Len(t, groups, MaxDates)
	assert.Equal(t, "2026-11-17", groups[MaxDates-1].Key)
	assert.Len(t, groups[0].Slots, 2)

	total := 0
	for _, g := range groups {
		total += len(g.Slots)
	}
	assert.Equal(t, MaxDates+1, total)
}

func TestGroup_KeyAndLabelUseSameTimezone(t *testing.T) {
	loc := london(t)
	// 23:30 UTC 19 октября = 00:30 BST 20 октября
	slot := domain.Slot{Start: time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC), Available: true}

	groups := Group([]domain.Slot{slot}, loc)

	require.Len(t, groups, 1)
	assert.Equal(t, "2026-10-20", groups[0].Key)
	assert.Equal(t, "Tue 20 Oct", groups[0].Label)
}

func TestIndexOf(t *testing.T) {
	groups := []DayGroup{{Key: "2026-10-19"}, {Key: "2026-10-20"}}
	assert.Equal(t, 1, IndexOf(groups, "2026-10-20"))
	assert.Equal(t, -1, IndexOf(groups, "2026-10-21"))
}

func TestBuildMonthGrid_SingleMonth(t *testing.T) {
	loc := london(t)
	slots := append(
		slotsOn(loc, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), []int{9}, true),
		slotsOn(loc, time.Date(2026, 10, 21, 0, 0, 0, 0, loc), []int{9}, false)...,
	)

	grid := BuildMonthGrid(Group(slots, loc))

	assert.Equal(t, "October 2026", grid.Title)
	require.Len(t, grid.Weeks, 1)
	week := grid.Weeks[0]
	assert.Equal(t, 19, week[0].Day)
	assert.Equal(t, CellAvailable, week[0].State)
	assert.Equal(t, 20, week[1].Day)
	assert.Equal(t, CellNoData, week[1].State)
	assert.Equal(t, CellFullyBooked, week[2].State)
	assert.True(t, week[3].Empty)
	assert.True(t, week[6].Empty)
}

func TestBuildMonthGrid_LeadingPad(t *testing.T) {
	// 1 октября 2026 - четверг
	slots := slotsOn(time.UTC, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), []int{9}, true)

	grid := BuildMonthGrid(Group(slots, time.UTC))

	require.Len(t, grid.Weeks, 1)
	assert.True(t, grid.Weeks[0][0].Empty)
	assert.True(t, grid.Weeks[0][2].Empty)
	assert.Equal(t, 1, grid.Weeks[0][3].Day)
}

func TestBuildMonthGrid_CrossMonth(t *testing.T) {
	loc := time.UTC
	slots := append(
		slotsOn(loc, time.Date(2026, 10, 30, 0, 0, 0, 0, loc), []int{9}, true),
		slotsOn(loc, time.Date(2026, 11, 2, 0, 0, 0, 0, loc), []int{9}, true)...,
	)

	grid := BuildMonthGrid(Group(slots, loc))

	assert.Equal(t, "Oct – Nov 2026", grid.Title)
	require.Len(t, grid.Weeks, 2)
	assert.Equal(t, 30, grid.Weeks[0][4].Day)
	assert.Equal(t, 2, grid.Weeks[1][0].Day)
}

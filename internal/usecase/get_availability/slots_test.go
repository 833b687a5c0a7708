package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/types"
)

func london(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	return loc
}

func testSettings(t *testing.T) Settings {
	weekday := DayHours{Open: types.MustTimeString("08:00"), Close: types.MustTimeString("18:00")}
	return Settings{
		Location:              london(t),
		HorizonDays:           2,
		SlotStepMinutes:       30,
		TravelBufferStep:      15,
		MaxConcurrentBookings: 1,
		WorkingHours: map[time.Weekday]DayHours{
			time.Monday:    weekday,
			time.Tuesday:   weekday,
			time.Wednesday: weekday,
			time.Thursday:  weekday,
			time.Friday:    weekday,
			time.Saturday:  {Open: types.MustTimeString("09:00"), Close: types.MustTimeString("13:00")},
		},
		PaymentsEnabled: true,
		DepositGBP:      30,
	}
}

func TestTravelBuffer(t *testing.T) {
	tests := []struct {
		drive, step, want int
	}{
		{0, 15, 0},
		{1, 15, 15},
		{15, 15, 15},
		{16, 15, 30},
		{34, 15, 45},
		{20, 0, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, travelBuffer(tt.drive, tt.step), "drive=%d step=%d", tt.drive, tt.step)
	}
}

func TestQuoteFor(t *testing.T) {
	services := []domain.Service{
		{ID: "a", ZonePrices: map[domain.ZoneID]float64{domain.ZoneA: 95, domain.ZoneB: 135}},
		{ID: "b", ZonePrices: map[domain.ZoneID]float64{domain.ZoneA: 145}},
	}

	price, ok := quoteFor(services, domain.ZoneA).Amount()
	assert.True(t, ok)
	assert.Equal(t, 240.0, price)

	assert.False(t, quoteFor(services, domain.ZoneB).IsFixed())
}

func TestDepositFor(t *testing.T) {
	s := Settings{PaymentsEnabled: true, DepositGBP: 30}

	assert.Equal(t, 30.0, *depositFor(domain.FixedPrice(135), s))
	assert.Equal(t, 20.0, *depositFor(domain.FixedPrice(20), s))
	assert.Nil(t, depositFor(domain.QuoteRequired(), s))

	s.PaymentsEnabled = false
	assert.Nil(t, depositFor(domain.FixedPrice(135), s))
}

func TestGenerateStarts_MinNoticeAndClosingTime(t *testing.T) {
	s := testSettings(t)
	now := time.Date(2026, 10, 19, 7, 0, 0, 0, s.Location) // понедельник

	starts := generateStarts(now, now.Add(24*time.Hour), 90, s)

	require.Len(t, starts, 18)
	assert.Equal(t, time.Date(2026, 10, 20, 8, 0, 0, 0, s.Location), starts[0])
	assert.Equal(t, time.Date(2026, 10, 20, 16, 30, 0, 0, s.Location), starts[len(starts)-1])
}

func TestGenerateStarts_ClosedDays(t *testing.T) {
	s := testSettings(t)
	now := time.Date(2026, 10, 24, 12, 0, 0, 0, s.Location) // суббота, после последнего слота

	assert.Empty(t, generateStarts(now, now, 90, s))
}

func TestGenerateStarts_AcrossClockChange(t *testing.T) {
	s := testSettings(t)
	now := time.Date(2026, 10, 25, 6, 0, 0, 0, time.UTC) // воскресенье, переход на GMT

	starts := generateStarts(now, now, 60, s)

	require.NotEmpty(t, starts)
	assert.Equal(t, time.Date(2026, 10, 26, 8, 0, 0, 0, time.UTC), starts[0].UTC())
}

func TestCountOverlappingBookings(t *testing.T) {
	loc := london(t)
	at := func(h, m int) time.Time { return time.Date(2026, 10, 20, h, m, 0, 0, loc) }
	start := at(9, 0)

	bookings := []*domain.Booking{
		{SlotStart: &start, DurationMinutes: 90, Status: domain.StatusConfirmed},
		{SlotStart: &start, DurationMinutes: 90, Status: domain.StatusCancelled},
		{SlotStart: &start, DurationMinutes: 90, Status: domain.StatusPendingManualReview},
	}

	assert.Equal(t, 1, countOverlappingBookings(at(10, 0), 60, bookings))
	assert.Equal(t, 0, countOverlappingBookings(at(10, 30), 60, bookings))
	assert.Equal(t, 0, countOverlappingBookings(at(8, 0), 60, bookings))
	assert.Equal(t, 1, countOverlappingBookings(at(8, 0), 61, bookings))
}

func TestMarkAvailability(t *testing.T) {
	loc := london(t)
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, loc)
	bookings := []*domain.Booking{
		{SlotStart: &start, DurationMinutes: 60, Status: domain.StatusPendingDeposit},
	}
	starts := []time.Time{start.Add(-time.Hour), start, start.Add(time.Hour)}

	slots := markAvailability(starts, 60, bookings, 1)
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)

	slots = markAvailability(starts, 60, bookings, 2)
	assert.True(t, slots[1].Available)
}

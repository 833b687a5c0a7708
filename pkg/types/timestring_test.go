package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, ts.Minutes())
	assert.Equal(t, "08:30", ts.String())

	end, err := NewTimeStringFromString("24:00")
	require.NoError(t, err)
	assert.Equal(t, "24:00", end.String())

	_, err = NewTimeStringFromString("8am")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := MustTimeString("17:00")

	end, err := start.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, "18:00", end.String())
	assert.True(t, start.IsBefore(end))
	assert.True(t, end.IsAfter(start))

	_, err = start.AddMinutes(8 * 60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_On(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	date := time.Date(2026, time.October, 19, 15, 45, 0, 0, loc)
	got := MustTimeString("09:30").On(date)

	assert.Equal(t, time.Date(2026, time.October, 19, 9, 30, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("10:15:00"))
	assert.Equal(t, "10:15", ts.String())

	require.NoError(t, ts.Scan([]byte("11:00")))
	assert.Equal(t, "11:00", ts.String())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_UnmarshalText(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.UnmarshalText([]byte("18:00")))
	assert.True(t, ts.Equal(MustTimeString("18:00")))
	assert.Error(t, ts.UnmarshalText([]byte("25:00")))
}

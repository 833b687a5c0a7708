package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePostcode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ME19 4HT", "ME19 4HT"},
		{"me194ht", "ME19 4HT"},
		{"  tn9   1aa ", "TN9 1AA"},
		{"SW1A1AA", "SW1A 1AA"},
		{"M11AE", "M1 1AE"},
	}
	for _, tt := range tests {
		got, err := NormalizePostcode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "12345", "ME19", "ME19 4H"} {
		_, err := NormalizePostcode(bad)
		assert.ErrorIs(t, err, ErrInvalidPostcode, bad)
	}
}

func TestOutwardCode(t *testing.T) {
	assert.Equal(t, "ME19", OutwardCode("ME19 4HT"))
	assert.Equal(t, "TN9", OutwardCode("TN9"))
}

func TestZoneThresholds_Classify(t *testing.T) {
	th := ZoneThresholds{AMax: 20, BMax: 40, CMax: 60}

	assert.Equal(t, ZoneA, th.Classify(0))
	assert.Equal(t, ZoneA, th.Classify(20))
	assert.Equal(t, ZoneB, th.Classify(21))
	assert.Equal(t, ZoneC, th.Classify(60))
	assert.Equal(t, ZoneOutside, th.Classify(61))
}

func TestPriceBandFor(t *testing.T) {
	services := []Service{
		{ID: "diagnostic-callout", ZonePrices: map[ZoneID]float64{ZoneA: 95, ZoneB: 135}},
		{ID: "pre-purchase-inspection", ZonePrices: map[ZoneID]float64{ZoneA: 145, ZoneB: 175}},
		{ID: "electrical-fault-finding", ZonePrices: map[ZoneID]float64{}},
	}

	band := PriceBandFor(services, ZoneB)
	require.NotNil(t, band)
	assert.Equal(t, 135.0, band.MinGBP)
	assert.Equal(t, 175.0, band.MaxGBP)

	assert.Nil(t, PriceBandFor(services, ZoneC))
}

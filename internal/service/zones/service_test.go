package zones

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/logger"
)

type mockRouting struct {
	times map[string]domain.DriveTime // ключ: base
	err   error
	calls int
}

func (m *mockRouting) DriveTime(_ context.Context, from, _ string) (domain.DriveTime, error) {
	m.calls++
	if m.err != nil {
		return domain.DriveTime{}, m.err
	}
	dt, ok := m.times[from]
	if !ok {
		return domain.DriveTime{}, errors.New("no route")
	}
	return dt, nil
}

type mapCache struct {
	data map[string]domain.DriveTime
}

func (c *mapCache) Get(_ context.Context, from, to string) (domain.DriveTime, bool, error) {
	dt, ok := c.data[from+"|"+to]
	return dt, ok, nil
}

func (c *mapCache) Set(_ context.Context, from, to string, dt domain.DriveTime) error {
	c.data[from+"|"+to] = dt
	return nil
}

type stubCatalog struct {
	services []domain.Service
	err      error
}

func (c *stubCatalog) List(context.Context) ([]domain.Service, error) {
	return c.services, c.err
}

var thresholds = domain.ZoneThresholds{AMax: 20, BMax: 40, CMax: 60}

var catalog = &stubCatalog{services: []domain.Service{
	{ID: "diagnostic-callout", ZonePrices: map[domain.ZoneID]float64{domain.ZoneA: 95, domain.ZoneB: 135, domain.ZoneC: 165}},
	{ID: "pre-purchase-inspection", ZonePrices: map[domain.ZoneID]float64{domain.ZoneA: 145, domain.ZoneB: 175, domain.ZoneC: 205}},
	{ID: "electrical-fault-finding", ZonePrices: map[domain.ZoneID]float64{}},
}}

func districtsOnly() *Service {
	cfg := Config{
		Thresholds: thresholds,
		Districts: map[string]domain.DriveTime{
			"ME19": {Minutes: 10, DistanceMiles: 4},
			"TN23": {Minutes: 35, DistanceMiles: 24},
			"CT9":  {Minutes: 75, DistanceMiles: 52},
		},
	}
	return NewService(cfg, nil, nil, catalog, logger.NewNop())
}

func TestCalculate_DistrictTable(t *testing.T) {
	tests := []struct {
		postcode     string
		wantPostcode string
		wantZone     domain.ZoneID
		wantBand     *domain.PriceBand
	}{
		{"me194ht", "ME19 4HT", domain.ZoneA, &domain.PriceBand{MinGBP: 95, MaxGBP: 145}},
		{"TN23 1AA", "TN23 1AA", domain.ZoneB, &domain.PriceBand{MinGBP: 135, MaxGBP: 175}},
		{"CT9 1AB", "CT9 1AB", domain.ZoneOutside, nil},
	}

	svc := districtsOnly()
	for _, tt := range tests {
		t.Run(tt.postcode, func(t *testing.T) {
			got, err := svc.Calculate(context.Background(), tt.postcode)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPostcode, got.Postcode)
			assert.Equal(t, tt.wantZone, got.Zone)
			assert.Equal(t, tt.wantZone == domain.ZoneOutside, got.ManualReviewRequired)
			assert.Equal(t, tt.wantBand, got.PriceBand)
		})
	}
}

func TestResolve_InvalidPostcode(t *testing.T) {
	_, err := districtsOnly().Resolve(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrInvalidPostcode)
}

func TestResolve_NotCovered(t *testing.T) {
	_, err := districtsOnly().Resolve(context.Background(), "EH1 1AA")
	assert.ErrorIs(t, err, ErrNotCovered)
}

func TestResolve_RoutingMinimumOverBases(t *testing.T) {
	routing := &mockRouting{times: map[string]domain.DriveTime{
		"ME19 6AA": {Minutes: 45, DistanceMiles: 30},
		"CT1 1AA":  {Minutes: 18, DistanceMiles: 9},
	}}
	cache := &mapCache{data: map[string]domain.DriveTime{}}
	cfg := Config{Thresholds: thresholds, Bases: []string{"ME19 6AA", "CT1 1AA"}}
	svc := NewService(cfg, routing, cache, catalog, logger.NewNop())

	got, err := svc.Resolve(context.Background(), "CT9 1AB")
	require.NoError(t, err)
	assert.Equal(t, 18, got.DriveTimeMinutes)
	assert.Equal(t, domain.ZoneA, got.Zone)
	assert.Equal(t, 2, routing.calls)

	// Повторный запрос обслуживается из кэша
	_, err = svc.Resolve(context.Background(), "CT9 1AB")
	require.NoError(t, err)
	assert.Equal(t, 2, routing.calls)
}

func TestResolve_RoutingFailureFallsBackToDistricts(t *testing.T) {
	routing := &mockRouting{err: errors.New("timeout")}
	cfg := Config{
		Thresholds: thresholds,
		Bases:      []string{"ME19 6AA"},
		Districts:  map[string]domain.DriveTime{"TN23": {Minutes: 35}},
	}
	svc := NewService(cfg, routing, nil, catalog, logger.NewNop())

	got, err := svc.Resolve(context.Background(), "TN23 1AA")
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneB, got.Zone)

	_, err = svc.Resolve(context.Background(), "EH1 1AA")
	assert.ErrorIs(t, err, ErrNotCovered)
}

func TestCalculate_CatalogErrorOmitsBand(t *testing.T) {
	svc := NewService(Config{Thresholds: thresholds, Districts: map[string]domain.DriveTime{"ME19": {Minutes: 10}}},
		nil, nil, &stubCatalog{err: errors.New("db down")}, logger.NewNop())

	got, err := svc.Calculate(context.Background(), "ME19 4HT")
	require.NoError(t, err)
	assert.Nil(t, got.PriceBand)
}

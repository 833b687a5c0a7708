package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/logger"
)

type stubRepo struct {
	services []domain.Service
	err      error
}

func (r *stubRepo) ListActive(context.Context) ([]domain.Service, error) {
	return r.services, r.err
}

func newService(repo *stubRepo) *Service {
	return NewService(repo, logger.NewNop())
}

var testCatalog = []domain.Service{
	{ID: "diagnostic-callout", Label: "Diagnostic call-out", DurationMinutes: 60},
	{ID: "pre-purchase-inspection", Label: "Pre-purchase inspection", DurationMinutes: 90},
}

func TestResolve_KeepsRequestOrderAndDedupes(t *testing.T) {
	svc := newService(&stubRepo{services: testCatalog})

	got, err := svc.Resolve(context.Background(), []string{"pre-purchase-inspection", " diagnostic-callout", "pre-purchase-inspection", ""})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "pre-purchase-inspection", got[0].ID)
	assert.Equal(t, "diagnostic-callout", got[1].ID)
}

func TestResolve_Unknown(t *testing.T) {
	svc := newService(&stubRepo{services: testCatalog})

	_, err := svc.Resolve(context.Background(), []string{"diagnostic-callout", "tyre-fitting"})

	require.ErrorIs(t, err, ErrUnknownService)
	var unknown *UnknownServiceError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "tyre-fitting", unknown.ID)
}

func TestResolve_Empty(t *testing.T) {
	svc := newService(&stubRepo{services: testCatalog})

	_, err := svc.Resolve(context.Background(), []string{" ", ""})
	assert.ErrorIs(t, err, ErrNoServices)
}

func TestResolve_TooMany(t *testing.T) {
	svc := newService(&stubRepo{services: testCatalog})

	_, err := svc.Resolve(context.Background(), []string{"a", "b", "c", "d", "e", "f"})
	assert.ErrorIs(t, err, ErrTooManyServices)
}

func TestList_RepositoryError(t *testing.T) {
	svc := newService(&stubRepo{err: errors.New("connection refused")})

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

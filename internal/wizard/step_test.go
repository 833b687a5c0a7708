package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

func TestDeriveStep(t *testing.T) {
	slot := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	normal := &domain.AvailabilityResult{Zone: domain.ZoneB}
	manual := &domain.AvailabilityResult{Zone: domain.ZoneOutside, ManualReviewRequired: true}

	tests := []struct {
		name         string
		availability *domain.AvailabilityResult
		slot         *time.Time
		want         Step
	}{
		{"nothing yet", nil, nil, StepServiceAndLocation},
		{"availability without slot", normal, nil, StepChooseSlot},
		{"availability with slot", normal, &slot, StepDetails},
		{"manual review without slot", manual, nil, StepDetails},
		{"manual review with slot", manual, &slot, StepDetails},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStep(tt.availability, tt.slot))
		})
	}
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, Forward, DirectionOf(StepServiceAndLocation, StepChooseSlot))
	assert.Equal(t, Forward, DirectionOf(StepServiceAndLocation, StepDetails))
	assert.Equal(t, Back, DirectionOf(StepDetails, StepChooseSlot))
	assert.Equal(t, Back, DirectionOf(StepDetails, StepServiceAndLocation))
	// без изменения шага - вперед
	assert.Equal(t, Forward, DirectionOf(StepChooseSlot, StepChooseSlot))
}

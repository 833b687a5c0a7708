package domain

import "time"

// Slot a single offerable start time
type Slot struct {
	Start     time.Time
	Available bool
}

package domain

import (
	"fmt"
	"time"
)

// Quote is either a fixed price or "quote required"
type Quote struct {
	amountGBP float64
	fixed     bool
}

// FixedPrice a known price in GBP
func FixedPrice(gbp float64) Quote {
	return Quote{amountGBP: gbp, fixed: true}
}

// QuoteRequired a price that staff must confirm
func QuoteRequired() Quote {
	return Quote{}
}

// Amount returns the fixed amount; ok=false when a quote is required
func (q Quote) Amount() (float64, bool) {
	return q.amountGBP, q.fixed
}

// IsFixed returns true for a fixed price
func (q Quote) IsFixed() bool {
	return q.fixed
}

func (q Quote) String() string {
	if !q.fixed {
		return "Quote required"
	}
	return FormatGBP(q.amountGBP)
}

// FormatGBP formats an amount as "£135" or "£135.50"
func FormatGBP(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("£%d", int64(amount))
	}
	return fmt.Sprintf("£%.2f", amount)
}

// AvailabilityResult computed trip, price and slots for a postcode and services
type AvailabilityResult struct {
	Postcode               string
	Zone                   ZoneID
	DriveTimeMinutes       int
	TravelBufferMinutes    int
	ServiceDurationMinutes int
	TotalDurationMinutes   int
	Price                  Quote
	Deposit                *float64
	ManualReviewRequired   bool
	Slots                  []Slot
}

// OffersSlot returns true if start is one of the available slots
func (r *AvailabilityResult) OffersSlot(start time.Time) bool {
	for _, s := range r.Slots {
		if s.Available && s.Start.Equal(start) {
			return true
		}
	}
	return false
}

// AvailableCount number of available slots
func (r *AvailabilityResult) AvailableCount() int {
	n := 0
	for _, s := range r.Slots {
		if s.Available {
			n++
		}
	}
	return n
}

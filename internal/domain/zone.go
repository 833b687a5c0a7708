package domain

import (
	"errors"
	"regexp"
	"strings"
)

// ZoneID drive-time pricing tier
type ZoneID string

const (
	ZoneA       ZoneID = "A"
	ZoneB       ZoneID = "B"
	ZoneC       ZoneID = "C"
	ZoneOutside ZoneID = "Outside"
)

// ErrInvalidPostcode the input does not look like a UK postcode
var ErrInvalidPostcode = errors.New("domain: invalid UK postcode")

var postcodePattern = regexp.MustCompile(`^([A-Z]{1,2}[0-9][A-Z0-9]?)([0-9][A-Z]{2})$`)

// NormalizePostcode upper-cases the postcode and puts one space before the inward code
func NormalizePostcode(raw string) (string, error) {
	compact := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	m := postcodePattern.FindStringSubmatch(compact)
	if m == nil {
		return "", ErrInvalidPostcode
	}
	return m[1] + " " + m[2], nil
}

// OutwardCode the district part of a normalised postcode ("ME19 4HT" -> "ME19")
func OutwardCode(postcode string) string {
	if i := strings.IndexByte(postcode, ' '); i >= 0 {
		return postcode[:i]
	}
	return postcode
}

// ZoneThresholds upper drive-time bounds (minutes, inclusive) for zones A, B and C
type ZoneThresholds struct {
	AMax int
	BMax int
	CMax int
}

// Classify maps drive time to a zone
func (t ZoneThresholds) Classify(driveMinutes int) ZoneID {
	switch {
	case driveMinutes <= t.AMax:
		return ZoneA
	case driveMinutes <= t.BMax:
		return ZoneB
	case driveMinutes <= t.CMax:
		return ZoneC
	default:
		return ZoneOutside
	}
}

// PriceBand min/max catalog price in a zone
type PriceBand struct {
	MinGBP float64
	MaxGBP float64
}

// ZoneResult result of the zone calculator
type ZoneResult struct {
	Postcode             string
	Zone                 ZoneID
	DriveTimeMinutes     int
	DistanceMiles        float64
	ManualReviewRequired bool
	PriceBand            *PriceBand
}

// PriceBandFor min/max over services priced in the zone; nil if none is
func PriceBandFor(services []Service, zone ZoneID) *PriceBand {
	var band *PriceBand
	for _, s := range services {
		price, ok := s.PriceFor(zone)
		if !ok {
			continue
		}
		if band == nil {
			band = &PriceBand{MinGBP: price, MaxGBP: price}
			continue
		}
		if price < band.MinGBP {
			band.MinGBP = price
		}
		if price > band.MaxGBP {
			band.MaxGBP = price
		}
	}
	return band
}

// DriveTime travel estimate between two postcodes
type DriveTime struct {
	Minutes       int
	DistanceMiles float64
}

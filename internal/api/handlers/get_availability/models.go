package get_availability

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	getAvailability "github.com/m04kA/SMC-MobileDiagnostics/internal/usecase/get_availability"
)

// SlotResponse слот в формате RFC 3339
type SlotResponse struct {
	Start     string `json:"start"`
	Available bool   `json:"available"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Postcode               string         `json:"postcode"`
	Zone                   string         `json:"zone"`
	DriveTimeMinutes       int            `json:"drive_time_minutes"`
	TravelBufferMinutes    int            `json:"travel_buffer_minutes"`
	ServiceDurationMinutes int            `json:"service_duration_minutes"`
	TotalDurationMinutes   int            `json:"total_duration_minutes"`
	FixedPriceGBP          *float64       `json:"fixed_price_gbp"`
	DepositGBP             *float64       `json:"deposit_gbp"`
	ManualReviewRequired   bool           `json:"manual_review_required"`
	Slots                  []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос из query параметров (service_ids через запятую)
func ToUseCaseRequest(postcode, serviceIDs string) *getAvailability.Request {
	var ids []string
	for _, id := range strings.Split(serviceIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return &getAvailability.Request{
		Postcode:   strings.TrimSpace(postcode),
		ServiceIDs: ids,
	}
}

// FromDomain конвертирует результат use case в HTTP ответ
func FromDomain(result *domain.AvailabilityResult) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		Postcode:               result.Postcode,
		Zone:                   string(result.Zone),
		DriveTimeMinutes:       result.DriveTimeMinutes,
		TravelBufferMinutes:    result.TravelBufferMinutes,
		ServiceDurationMinutes: result.ServiceDurationMinutes,
		TotalDurationMinutes:   result.TotalDurationMinutes,
		DepositGBP:             result.Deposit,
		ManualReviewRequired:   result.ManualReviewRequired,
		Slots:                  make([]SlotResponse, 0, len(result.Slots)),
	}

	if amount, ok := result.Price.Amount(); ok {
		resp.FixedPriceGBP = &amount
	}

	for _, s := range result.Slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			Start:     s.Start.Format(time.RFC3339),
			Available: s.Available,
		})
	}

	return resp
}

package calculate_zone

import "github.com/m04kA/SMC-MobileDiagnostics/internal/domain"

// PriceBandResponse диапазон цен в зоне
type PriceBandResponse struct {
	MinGBP float64 `json:"min_gbp"`
	MaxGBP float64 `json:"max_gbp"`
}

// ZoneResponse HTTP response model
type ZoneResponse struct {
	Postcode             string             `json:"postcode"`
	Zone                 string             `json:"zone"`
	DriveTimeMinutes     int                `json:"drive_time_minutes"`
	DistanceMiles        float64            `json:"distance_miles"`
	ManualReviewRequired bool               `json:"manual_review_required"`
	PriceBand            *PriceBandResponse `json:"price_band"`
}

// FromDomain конвертирует результат расчета зоны в HTTP ответ
func FromDomain(z *domain.ZoneResult) *ZoneResponse {
	resp := &ZoneResponse{
		Postcode:             z.Postcode,
		Zone:                 string(z.Zone),
		DriveTimeMinutes:     z.DriveTimeMinutes,
		DistanceMiles:        z.DistanceMiles,
		ManualReviewRequired: z.ManualReviewRequired,
	}
	if z.PriceBand != nil {
		resp.PriceBand = &PriceBandResponse{MinGBP: z.PriceBand.MinGBP, MaxGBP: z.PriceBand.MaxGBP}
	}
	return resp
}

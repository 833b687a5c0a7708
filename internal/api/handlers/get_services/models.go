package get_services

import "github.com/m04kA/SMC-MobileDiagnostics/internal/domain"

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              string             `json:"id"`
	Label           string             `json:"label"`
	DurationMinutes int                `json:"duration_minutes"`
	MinNoticeHours  int                `json:"min_notice_hours"`
	ZonePrices      map[string]float64 `json:"zone_prices"`
}

// FromDomain конвертирует каталог в HTTP модель
func FromDomain(services []domain.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		prices := make(map[string]float64, len(s.ZonePrices))
		for zone, price := range s.ZonePrices {
			prices[string(zone)] = price
		}
		out = append(out, ServiceResponse{
			ID:              s.ID,
			Label:           s.Label,
			DurationMinutes: s.DurationMinutes,
			MinNoticeHours:  s.MinNoticeHours,
			ZonePrices:      prices,
		})
	}
	return out
}

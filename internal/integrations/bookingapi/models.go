package bookingapi

import (
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// Service модель услуги из каталога
type Service struct {
	ID              string             `json:"id"`
	Label           string             `json:"label"`
	DurationMinutes int                `json:"duration_minutes"`
	MinNoticeHours  int                `json:"min_notice_hours"`
	ZonePrices      map[string]float64 `json:"zone_prices"`
}

// Slot модель слота
type Slot struct {
	Start     time.Time `json:"start"`
	Available bool      `json:"available"`
}

// Availability модель ответа GET /api/booking/availability
type Availability struct {
	Postcode               string   `json:"postcode"`
	Zone                   string   `json:"zone"`
	DriveTimeMinutes       int      `json:"drive_time_minutes"`
	TravelBufferMinutes    int      `json:"travel_buffer_minutes"`
	ServiceDurationMinutes int      `json:"service_duration_minutes"`
	TotalDurationMinutes   int      `json:"total_duration_minutes"`
	FixedPriceGBP          *float64 `json:"fixed_price_gbp"`
	DepositGBP             *float64 `json:"deposit_gbp"`
	ManualReviewRequired   bool     `json:"manual_review_required"`
	Slots                  []Slot   `json:"slots"`
}

// PriceBand модель ценового диапазона зоны
type PriceBand struct {
	MinGBP float64 `json:"min_gbp"`
	MaxGBP float64 `json:"max_gbp"`
}

// Zone модель ответа GET /api/calculate-zone
type Zone struct {
	Postcode             string     `json:"postcode"`
	Zone                 string     `json:"zone"`
	DriveTimeMinutes     int        `json:"drive_time_minutes"`
	DistanceMiles        float64    `json:"distance_miles"`
	ManualReviewRequired bool       `json:"manual_review_required"`
	PriceBand            *PriceBand `json:"price_band"`
}

// ReserveRequest тело POST /api/booking/reserve
type ReserveRequest struct {
	ServiceIDs            []string `json:"service_ids"`
	Slot                  string   `json:"slot,omitempty"`
	Name                  string   `json:"name"`
	Email                 string   `json:"email"`
	Phone                 string   `json:"phone"`
	Postcode              string   `json:"postcode"`
	AddressLine1          string   `json:"address_line1"`
	Town                  string   `json:"town"`
	VehicleRegistration   string   `json:"vehicle_registration"`
	VehicleMake           string   `json:"vehicle_make"`
	VehicleModel          string   `json:"vehicle_model"`
	Mileage               string   `json:"mileage"`
	Symptoms              string   `json:"symptoms"`
	Notes                 string   `json:"notes,omitempty"`
	SafeLocationConfirmed bool     `json:"safe_location_confirmed"`
}

// ReserveResponse ответ POST /api/booking/reserve
type ReserveResponse struct {
	Status     string `json:"status"`
	Reference  string `json:"reference"`
	Message    string `json:"message,omitempty"`
	PaymentURL string `json:"payment_url,omitempty"`
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Reservation данные брони для отправки
type Reservation struct {
	ServiceIDs []string
	Slot       *time.Time // nil для ручной проверки без предпочтительного времени
	Details    domain.BookingDetails
}

// Outcome результат бронирования
type Outcome struct {
	Status     domain.BookingStatus
	Reference  string
	Message    string
	PaymentURL string
}

func (s Service) toDomain() domain.Service {
	prices := make(map[domain.ZoneID]float64, len(s.ZonePrices))
	for zone, price := range s.ZonePrices {
		prices[domain.ZoneID(zone)] = price
	}
	return domain.Service{
		ID:              s.ID,
		Label:           s.Label,
		DurationMinutes: s.DurationMinutes,
		MinNoticeHours:  s.MinNoticeHours,
		ZonePrices:      prices,
	}
}

func (a Availability) toDomain() *domain.AvailabilityResult {
	price := domain.QuoteRequired()
	if a.FixedPriceGBP != nil {
		price = domain.FixedPrice(*a.FixedPriceGBP)
	}

	slots := make([]domain.Slot, len(a.Slots))
	for i, s := range a.Slots {
		slots[i] = domain.Slot{Start: s.Start, Available: s.Available}
	}

	return &domain.AvailabilityResult{
		Postcode:               a.Postcode,
		Zone:                   domain.ZoneID(a.Zone),
		DriveTimeMinutes:       a.DriveTimeMinutes,
		TravelBufferMinutes:    a.TravelBufferMinutes,
		ServiceDurationMinutes: a.ServiceDurationMinutes,
		TotalDurationMinutes:   a.TotalDurationMinutes,
		Price:                  price,
		Deposit:                a.DepositGBP,
		ManualReviewRequired:   a.ManualReviewRequired,
		Slots:                  slots,
	}
}

func (z Zone) toDomain() *domain.ZoneResult {
	result := &domain.ZoneResult{
		Postcode:             z.Postcode,
		Zone:                 domain.ZoneID(z.Zone),
		DriveTimeMinutes:     z.DriveTimeMinutes,
		DistanceMiles:        z.DistanceMiles,
		ManualReviewRequired: z.ManualReviewRequired,
	}
	if z.PriceBand != nil {
		result.PriceBand = &domain.PriceBand{MinGBP: z.PriceBand.MinGBP, MaxGBP: z.PriceBand.MaxGBP}
	}
	return result
}

func newReserveRequest(r Reservation) ReserveRequest {
	req := ReserveRequest{
		ServiceIDs:            r.ServiceIDs,
		Name:                  r.Details.Name,
		Email:                 r.Details.Email,
		Phone:                 r.Details.Phone,
		Postcode:              r.Details.Postcode,
		AddressLine1:          r.Details.AddressLine1,
		Town:                  r.Details.Town,
		VehicleRegistration:   r.Details.VehicleRegistration,
		VehicleMake:           r.Details.VehicleMake,
		VehicleModel:          r.Details.VehicleModel,
		Mileage:               r.Details.Mileage,
		Symptoms:              r.Details.Symptoms,
		Notes:                 r.Details.Notes,
		SafeLocationConfirmed: r.Details.SafeLocationConfirmed,
	}
	if r.Slot != nil {
		req.Slot = r.Slot.Format(time.RFC3339)
	}
	return req
}

package reserve_booking

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	reserveBooking "github.com/m04kA/SMC-MobileDiagnostics/internal/usecase/reserve_booking"
)

// ReserveRequest HTTP request model
type ReserveRequest struct {
	ServiceIDs            []string `json:"service_ids"`
	Slot                  string   `json:"slot"` // RFC 3339, пусто для ручной проверки
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
	Notes                 string   `json:"notes"`
	SafeLocationConfirmed bool     `json:"safe_location_confirmed"`
}

// ReserveResponse HTTP response model
type ReserveResponse struct {
	Status     string `json:"status"`
	Reference  string `json:"reference"`
	Message    string `json:"message"`
	PaymentURL string `json:"payment_url,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом слота)
func (r *ReserveRequest) ToUseCaseRequest() (*reserveBooking.Request, error) {
	req := &reserveBooking.Request{
		ServiceIDs: r.ServiceIDs,
		Details: domain.BookingDetails{
			Name:                  r.Name,
			Email:                 r.Email,
			Phone:                 r.Phone,
			Postcode:              r.Postcode,
			AddressLine1:          r.AddressLine1,
			Town:                  r.Town,
			VehicleRegistration:   r.VehicleRegistration,
			VehicleMake:           r.VehicleMake,
			VehicleModel:          r.VehicleModel,
			Mileage:               r.Mileage,
			Symptoms:              r.Symptoms,
			Notes:                 r.Notes,
			SafeLocationConfirmed: r.SafeLocationConfirmed,
		},
	}

	if slot := strings.TrimSpace(r.Slot); slot != "" {
		start, err := time.Parse(time.RFC3339, slot)
		if err != nil {
			return nil, err
		}
		req.Slot = &start
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveBooking.Response) *ReserveResponse {
	return &ReserveResponse{
		Status:     string(resp.Status),
		Reference:  resp.Reference,
		Message:    resp.Message,
		PaymentURL: resp.PaymentURL,
	}
}

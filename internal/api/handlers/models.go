package handlers

import (
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/reports"
)

// BookingResponse бронирование в админке
type BookingResponse struct {
	ID                  int64    `json:"id"`
	Reference           string   `json:"reference"`
	Status              string   `json:"status"`
	ServiceIDs          []string `json:"service_ids"`
	SlotStart           *string  `json:"slot_start"`
	DurationMinutes     int      `json:"duration_minutes"`
	Zone                string   `json:"zone"`
	DriveTimeMinutes    int      `json:"drive_time_minutes"`
	TravelBufferMinutes int      `json:"travel_buffer_minutes"`
	PriceGBP            *float64 `json:"price_gbp"`
	DepositGBP          *float64 `json:"deposit_gbp"`

	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Postcode            string `json:"postcode"`
	AddressLine1        string `json:"address_line1"`
	Town                string `json:"town"`
	VehicleRegistration string `json:"vehicle_registration"`
	VehicleMake         string `json:"vehicle_make"`
	VehicleModel        string `json:"vehicle_model"`
	Mileage             string `json:"mileage"`
	Symptoms            string `json:"symptoms"`
	Notes               string `json:"notes,omitempty"`

	PaymentSessionID   *string `json:"payment_session_id,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// FromDomainBooking конвертирует бронирование в HTTP модель
func FromDomainBooking(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                  b.ID,
		Reference:           b.Reference,
		Status:              string(b.Status),
		ServiceIDs:          b.ServiceIDs,
		SlotStart:           formatTime(b.SlotStart),
		DurationMinutes:     b.DurationMinutes,
		Zone:                string(b.Zone),
		DriveTimeMinutes:    b.DriveTimeMinutes,
		TravelBufferMinutes: b.TravelBufferMinutes,
		PriceGBP:            b.PriceGBP,
		DepositGBP:          b.DepositGBP,
		Name:                b.Details.Name,
		Email:               b.Details.Email,
		Phone:               b.Details.Phone,
		Postcode:            b.Details.Postcode,
		AddressLine1:        b.Details.AddressLine1,
		Town:                b.Details.Town,
		VehicleRegistration: b.Details.VehicleRegistration,
		VehicleMake:         b.Details.VehicleMake,
		VehicleModel:        b.Details.VehicleModel,
		Mileage:             b.Details.Mileage,
		Symptoms:            b.Details.Symptoms,
		Notes:               b.Details.Notes,
		PaymentSessionID:    b.PaymentSessionID,
		CancellationReason:  b.CancellationReason,
		CancelledAt:         formatTime(b.CancelledAt),
		CreatedAt:           b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           b.UpdatedAt.Format(time.RFC3339),
	}
}

// ReportRequest тело создания и изменения отчета
type ReportRequest struct {
	BookingID           *int64           `json:"booking_id"`
	Title               string           `json:"title"`
	VehicleRegistration string           `json:"vehicle_registration"`
	Summary             string           `json:"summary"`
	Findings            []domain.Finding `json:"findings"`
}

// ReportResponse диагностический отчет
type ReportResponse struct {
	ID                  int64            `json:"id"`
	BookingID           *int64           `json:"booking_id"`
	Title               string           `json:"title"`
	VehicleRegistration string           `json:"vehicle_registration"`
	Summary             string           `json:"summary"`
	Findings            []domain.Finding `json:"findings"`
	Status              string           `json:"status"`
	ShareToken          *string          `json:"share_token,omitempty"`
	PublishedAt         *string          `json:"published_at,omitempty"`
	CreatedAt           string           `json:"created_at"`
	UpdatedAt           string           `json:"updated_at"`
}

// FromDomainReport конвертирует отчет в HTTP модель
func FromDomainReport(r *domain.Report) ReportResponse {
	findings := r.Findings
	if findings == nil {
		findings = []domain.Finding{}
	}
	return ReportResponse{
		ID:                  r.ID,
		BookingID:           r.BookingID,
		Title:               r.Title,
		VehicleRegistration: r.VehicleRegistration,
		Summary:             r.Summary,
		Findings:            findings,
		Status:              string(r.Status),
		ShareToken:          r.ShareToken,
		PublishedAt:         formatTime(r.PublishedAt),
		CreatedAt:           r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           r.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// ToServiceInput конвертирует тело запроса в модель сервиса отчетов
func (r *ReportRequest) ToServiceInput() reports.ReportInput {
	return reports.ReportInput{
		BookingID:           r.BookingID,
		Title:               r.Title,
		VehicleRegistration: r.VehicleRegistration,
		Summary:             r.Summary,
		Findings:            r.Findings,
	}
}

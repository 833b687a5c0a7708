package reserve_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// validateRequest повторяет клиентскую проверку полей
// Сначала заполненность полей, затем подтверждение безопасного места
func validateRequest(req *Request) error {
	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: service_ids is required", ErrInvalidInput)
	}

	if missing := req.Details.MissingFields(); len(missing) > 0 {
		return &IncompleteDetailsError{Missing: missing}
	}

	if !req.Details.SafeLocationConfirmed {
		return ErrSafeLocationUnconfirmed
	}

	if len([]rune(req.Details.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if len([]rune(req.Details.Symptoms)) > domain.MaxSymptomsLength {
		return fmt.Errorf("%w: symptoms must be at most %d characters", ErrInvalidInput, domain.MaxSymptomsLength)
	}

	return nil
}

// normalizeDetails обрезает пробелы в текстовых полях
func normalizeDetails(d domain.BookingDetails) domain.BookingDetails {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.AddressLine1 = strings.TrimSpace(d.AddressLine1)
	d.Town = strings.TrimSpace(d.Town)
	d.VehicleRegistration = strings.ToUpper(strings.TrimSpace(d.VehicleRegistration))
	d.VehicleMake = strings.TrimSpace(d.VehicleMake)
	d.VehicleModel = strings.TrimSpace(d.VehicleModel)
	d.Mileage = strings.TrimSpace(d.Mileage)
	d.Symptoms = strings.TrimSpace(d.Symptoms)
	d.Notes = strings.TrimSpace(d.Notes)
	return d
}

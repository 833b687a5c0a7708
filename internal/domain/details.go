package domain

import (
	"regexp"
	"strings"
)

// Field names shown to the customer when details are incomplete
const (
	FieldName                = "Full name"
	FieldEmail               = "Valid email address"
	FieldPhone               = "Phone number"
	FieldAddressLine1        = "Address line 1"
	FieldTown                = "Town/city"
	FieldVehicleRegistration = "Vehicle registration"
	FieldVehicleMake         = "Vehicle make"
	FieldVehicleModel        = "Vehicle model"
	FieldMileage             = "Approximate mileage"
	FieldSymptoms            = "Symptom description"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// BookingDetails customer, vehicle and fault description
type BookingDetails struct {
	Name                  string
	Email                 string
	Phone                 string
	Postcode              string
	AddressLine1          string
	Town                  string
	VehicleRegistration   string
	VehicleMake           string
	VehicleModel          string
	Mileage               string
	Symptoms              string
	Notes                 string
	SafeLocationConfirmed bool
}

type fieldRule struct {
	label string
	ok    func(d BookingDetails) bool
}

func minTrimmed(n int) func(string) bool {
	return func(s string) bool { return len([]rune(strings.TrimSpace(s))) >= n }
}

var detailRules = []fieldRule{
	{FieldName, func(d BookingDetails) bool { return minTrimmed(2)(d.Name) }},
	{FieldEmail, func(d BookingDetails) bool { return emailPattern.MatchString(strings.TrimSpace(d.Email)) }},
	{FieldPhone, func(d BookingDetails) bool { return minTrimmed(7)(d.Phone) }},
	{FieldAddressLine1, func(d BookingDetails) bool { return minTrimmed(2)(d.AddressLine1) }},
	{FieldTown, func(d BookingDetails) bool { return minTrimmed(2)(d.Town) }},
	{FieldVehicleRegistration, func(d BookingDetails) bool { return minTrimmed(2)(d.VehicleRegistration) }},
	{FieldVehicleMake, func(d BookingDetails) bool { return minTrimmed(1)(d.VehicleMake) }},
	{FieldVehicleModel, func(d BookingDetails) bool { return minTrimmed(1)(d.VehicleModel) }},
	{FieldMileage, func(d BookingDetails) bool { return minTrimmed(1)(d.Mileage) }},
	{FieldSymptoms, func(d BookingDetails) bool { return minTrimmed(2)(d.Symptoms) }},
}

// MissingFields returns the label of every missing or invalid field, in form order
func (d BookingDetails) MissingFields() []string {
	var missing []string
	for _, rule := range detailRules {
		if !rule.ok(d) {
			missing = append(missing, rule.label)
		}
	}
	return missing
}

// MissingFieldsMessage combined message for the customer, empty when all fields are valid
func MissingFieldsMessage(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	return "Please complete the following: " + strings.Join(missing, ", ") + "."
}

// SafeLocationMessage shown when the safe location box is left unticked
const SafeLocationMessage = "Please confirm the vehicle will be in a safe, legal location for the visit."

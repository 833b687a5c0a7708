package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDetails() BookingDetails {
	return BookingDetails{
		Name:                  "Sam Carter",
		Email:                 "sam@example.co.uk",
		Phone:                 "07700 900123",
		Postcode:              "ME19 4HT",
		AddressLine1:          "12 High Street",
		Town:                  "West Malling",
		VehicleRegistration:   "AB12 CDE",
		VehicleMake:           "Ford",
		VehicleModel:          "Transit",
		Mileage:               "85000",
		Symptoms:              "Engine light on, loss of power",
		SafeLocationConfirmed: true,
	}
}

func TestMissingFields_Valid(t *testing.T) {
	assert.Empty(t, validDetails().MissingFields())
}

func TestMissingFields_ReportsEveryField(t *testing.T) {
	d := validDetails()
	d.Email = ""
	d.VehicleMake = "  "

	missing := d.MissingFields()

	assert.Equal(t, []string{FieldEmail, FieldVehicleMake}, missing)
	msg := MissingFieldsMessage(missing)
	assert.Contains(t, msg, "Valid email address")
	assert.Contains(t, msg, "Vehicle make")
}

func TestMissingFields_Rules(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(d *BookingDetails)
		field string
	}{
		{"short name", func(d *BookingDetails) { d.Name = " S " }, FieldName},
		{"bad email", func(d *BookingDetails) { d.Email = "sam@example" }, FieldEmail},
		{"short phone", func(d *BookingDetails) { d.Phone = "12345 " }, FieldPhone},
		{"short address", func(d *BookingDetails) { d.AddressLine1 = "1" }, FieldAddressLine1},
		{"short town", func(d *BookingDetails) { d.Town = "X" }, FieldTown},
		{"short registration", func(d *BookingDetails) { d.VehicleRegistration = "A" }, FieldVehicleRegistration},
		{"no model", func(d *BookingDetails) { d.VehicleModel = "" }, FieldVehicleModel},
		{"no mileage", func(d *BookingDetails) { d.Mileage = "" }, FieldMileage},
		{"short symptoms", func(d *BookingDetails) { d.Symptoms = "?" }, FieldSymptoms},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.edit(&d)
			assert.Equal(t, []string{tt.field}, d.MissingFields())
		})
	}
}

func TestMissingFields_SafeLocationIsSeparate(t *testing.T) {
	d := validDetails()
	d.SafeLocationConfirmed = false
	assert.Empty(t, d.MissingFields())
}

func TestMissingFieldsMessage_Empty(t *testing.T) {
	assert.Equal(t, "", MissingFieldsMessage(nil))
}

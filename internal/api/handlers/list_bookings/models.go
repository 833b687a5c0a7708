package list_bookings

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/bookings/models"
)

// ToServiceRequest конвертирует query параметры в запрос к сервису
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Status: optional(query.Get("status")),
		From:   optional(query.Get("from")),
		To:     optional(query.Get("to")),
		Query:  query.Get("q"),
	}

	if v := query.Get("include_inactive"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = include
	}

	return req, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

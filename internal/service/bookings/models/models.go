package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

var (
	errInvalidStatus = errors.New("invalid status")
	errInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	errInvalidRange  = errors.New("from must not be after to")
)

// ListBookingsRequest параметры списка бронирований в админке
type ListBookingsRequest struct {
	Status          *string
	From            *string // YYYY-MM-DD, включительно
	To              *string // YYYY-MM-DD, включительно
	Query           string
	IncludeInactive bool
}

// ToDomainFilter конвертирует запрос в domain фильтр
// Даты интерпретируются в часовом поясе бизнеса
func (r *ListBookingsRequest) ToDomainFilter(loc *time.Location) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Query:           strings.TrimSpace(r.Query),
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil && *r.Status != "" {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// Явный фильтр по финальному статусу подразумевает неактивные
		filter.IncludeInactive = true
	}

	if r.From != nil && *r.From != "" {
		from, err := time.ParseInLocation(domain.DateFormat, *r.From, loc)
		if err != nil {
			return filter, errInvalidDate
		}
		filter.From = &from
	}

	if r.To != nil && *r.To != "" {
		to, err := time.ParseInLocation(domain.DateFormat, *r.To, loc)
		if err != nil {
			return filter, errInvalidDate
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return filter, errInvalidRange
	}

	return filter, nil
}

// UpdateStatusRequest смена статуса из админки
type UpdateStatusRequest struct {
	Status string
	Reason string
}

// ToDomainBookingStatus конвертирует строку в статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(strings.TrimSpace(s))
	if !status.IsValid() {
		return "", errInvalidStatus
	}
	return status, nil
}

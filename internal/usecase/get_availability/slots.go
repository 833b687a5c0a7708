package get_availability

import (
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// travelBuffer округляет время в пути вверх до шага step
func travelBuffer(driveMinutes, step int) int {
	if driveMinutes <= 0 {
		return 0
	}
	if step <= 0 {
		return driveMinutes
	}
	return (driveMinutes + step - 1) / step * step
}

// quoteFor суммирует цены услуг в зоне
// Если хотя бы у одной услуги нет цены для зоны, требуется расчет стоимости
func quoteFor(services []domain.Service, zone domain.ZoneID) domain.Quote {
	total := 0.0
	for _, s := range services {
		price, ok := s.PriceFor(zone)
		if !ok {
			return domain.QuoteRequired()
		}
		total += price
	}
	return domain.FixedPrice(total)
}

// depositFor депозит берется только при фиксированной цене и включенных платежах
func depositFor(price domain.Quote, s Settings) *float64 {
	amount, fixed := price.Amount()
	if !fixed || !s.PaymentsEnabled || s.DepositGBP <= 0 || amount <= 0 {
		return nil
	}
	deposit := s.DepositGBP
	if amount < deposit {
		deposit = amount
	}
	return &deposit
}

// minNoticeHours максимальное минимальное время до визита среди услуг
func minNoticeHours(services []domain.Service) int {
	hours := 0
	for _, s := range services {
		if s.MinNoticeHours > hours {
			hours = s.MinNoticeHours
		}
	}
	return hours
}

// generateStarts генерирует начала слотов на горизонт в часовом поясе бизнеса
// Слоты идут от открытия с шагом SlotStepMinutes, пока визит целиком помещается до закрытия.
// Слоты раньше earliest отбрасываются.
func generateStarts(now, earliest time.Time, totalMinutes int, s Settings) []time.Time {
	local := now.In(s.Location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.Location)

	starts := make([]time.Time, 0)
	for day := 0; day < s.HorizonDays; day++ {
		date := today.AddDate(0, 0, day)

		hours, ok := s.WorkingHours[date.Weekday()]
		if !ok || !hours.Open.IsBefore(hours.Close) {
			continue
		}

		for slot := hours.Open; ; {
			slotEnd, err := slot.AddMinutes(totalMinutes)
			if err != nil || slotEnd.IsAfter(hours.Close) {
				break
			}

			start := slot.On(date)
			if !start.Before(earliest) {
				starts = append(starts, start)
			}

			slot, err = slot.AddMinutes(s.SlotStepMinutes)
			if err != nil {
				break
			}
		}
	}

	return starts
}

// countOverlappingBookings подсчитывает бронирования, пересекающиеся с интервалом слота
// Граничащие интервалы (одно заканчивается там, где начинается другое) НЕ пересекаются
//
// Примеры для слота 11:30-13:00:
// - бронирование 11:00-11:30 → НЕТ пересечения
// - бронирование 12:45-14:00 → ЕСТЬ пересечение
func countOverlappingBookings(start time.Time, totalMinutes int, bookings []*domain.Booking) int {
	end := start.Add(time.Duration(totalMinutes) * time.Minute)

	count := 0
	for _, b := range bookings {
		if !b.BlocksSlot() {
			continue
		}
		if b.Overlaps(start, end) {
			count++
		}
	}
	return count
}

// markAvailability помечает слот недоступным, если пересечений не меньше лимита
func markAvailability(starts []time.Time, totalMinutes int, bookings []*domain.Booking, maxConcurrent int) []domain.Slot {
	slots := make([]domain.Slot, len(starts))
	for i, start := range starts {
		overlapping := countOverlappingBookings(start, totalMinutes, bookings)
		slots[i] = domain.Slot{
			Start:     start,
			Available: overlapping < maxConcurrent,
		}
	}
	return slots
}

package domain

// Service a bookable offering from the catalog
type Service struct {
	ID              string
	Label           string
	DurationMinutes int
	MinNoticeHours  int
	ZonePrices      map[ZoneID]float64
}

// PriceFor returns the price for the zone; ok=false means the zone needs a quote
func (s Service) PriceFor(zone ZoneID) (float64, bool) {
	price, ok := s.ZonePrices[zone]
	return price, ok
}

// FindService looks a service up by id
func FindService(services []Service, id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// ServiceLabels maps ids to labels in the order given; unknown ids are shown as is
func ServiceLabels(services []Service, ids []string) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if s, ok := FindService(services, id); ok {
			labels = append(labels, s.Label)
			continue
		}
		labels = append(labels, id)
	}
	return labels
}

package get_availability

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Postcode) == "" {
		return fmt.Errorf("%w: postcode is required", ErrInvalidInput)
	}

	for _, id := range req.ServiceIDs {
		if strings.TrimSpace(id) != "" {
			return nil
		}
	}

	return fmt.Errorf("%w: service_ids is required", ErrInvalidInput)
}

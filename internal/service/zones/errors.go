package zones

import "errors"

var (
	// ErrInvalidPostcode возвращается для строки, не похожей на почтовый индекс UK
	ErrInvalidPostcode = errors.New("invalid postcode")

	// ErrNotCovered возвращается, когда время в пути определить нельзя
	ErrNotCovered = errors.New("postcode not covered")
)

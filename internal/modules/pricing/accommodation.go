package pricing

import (
	"math"

	"tourquote/internal/domain"
)

// RoomsRequired derives a room count from the party size. The count is
// monotonic non-decreasing in party size for every accommodation type.
func RoomsRequired(t domain.AccommodationType, partySize int) (int, error) {
	if partySize <= 0 {
		return 0, validationf("party size must be positive, got %d", partySize)
	}
	switch t {
	case domain.AccommodationSingle:
		return partySize, nil
	case domain.AccommodationDouble:
		return int(math.Ceil(float64(partySize) / 2)), nil
	case domain.AccommodationTriple:
		return int(math.Ceil(float64(partySize) / 3)), nil
	}
	return 0, validationf("unknown accommodation type %q", t)
}

// PriceHotel prices one hotel stay: rooms × pricePerRoom × nights, plus the
// hotel's markup. Guide hotels are a pass-through operating cost, so their
// markup is forced to zero. partySize is the estimate's participant count;
// the hotel's own PaxCount is never consulted here.
func PriceHotel(h domain.Hotel, partySize int) (domain.CalculationResult, error) {
	var zero domain.CalculationResult

	if h.PricePerRoom < 0 {
		return zero, validationf("price per room must not be negative, got %.2f", h.PricePerRoom)
	}
	if h.Nights <= 0 {
		return zero, validationf("nights must be positive, got %d", h.Nights)
	}
	if h.MarkupPercent < 0 || h.MarkupPercent > 100 {
		return zero, validationf("markup percent must be in [0,100], got %.2f", h.MarkupPercent)
	}

	rooms, err := RoomsRequired(h.AccommodationType, partySize)
	if err != nil {
		return zero, err
	}

	baseCost := float64(rooms) * h.PricePerRoom * float64(h.Nights)

	markup := h.MarkupPercent
	if h.IsGuideHotel {
		markup = 0
	}
	return applyMarkup(baseCost, markup)
}

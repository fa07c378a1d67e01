package flightquote

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tourquote/internal/domain"
	"tourquote/internal/modules/pricing"
)

func TestCacheKeyDeterministic(t *testing.T) {
	req := pricing.RouteRequest{
		Origin:      "BUE",
		Destination: "MIA",
		CabinClass:  domain.CabinBusiness,
		Passengers:  domain.PassengerCounts{Adults: 2, Children: 1},
		Baggage:     domain.BaggageAllowance{Checked: 2, CarryOn: 2},
	}

	assert.Equal(t, cacheKey(req), cacheKey(req))
	assert.True(t, strings.HasPrefix(cacheKey(req), "routes:"))
}

func TestCacheKeyVariesByRequest(t *testing.T) {
	base := pricing.RouteRequest{
		Origin:      "BUE",
		Destination: "MIA",
		CabinClass:  domain.CabinEconomy,
		Passengers:  domain.PassengerCounts{Adults: 2},
	}

	cases := map[string]pricing.RouteRequest{
		"destination": {Origin: "BUE", Destination: "MAD", CabinClass: domain.CabinEconomy, Passengers: domain.PassengerCounts{Adults: 2}},
		"cabin":       {Origin: "BUE", Destination: "MIA", CabinClass: domain.CabinFirst, Passengers: domain.PassengerCounts{Adults: 2}},
		"mix":         {Origin: "BUE", Destination: "MIA", CabinClass: domain.CabinEconomy, Passengers: domain.PassengerCounts{Adults: 1, Students: 1}},
		"baggage":     {Origin: "BUE", Destination: "MIA", CabinClass: domain.CabinEconomy, Passengers: domain.PassengerCounts{Adults: 2}, Baggage: domain.BaggageAllowance{Checked: 3}},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, cacheKey(base), cacheKey(req))
		})
	}
}

func TestCacheKeyIgnoresTimeOfDay(t *testing.T) {
	morning := pricing.RouteRequest{
		Origin:        "BUE",
		Destination:   "MIA",
		DepartureDate: time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC),
	}
	evening := morning
	evening.DepartureDate = time.Date(2026, 9, 14, 21, 30, 0, 0, time.UTC)

	assert.Equal(t, cacheKey(morning), cacheKey(evening))
}

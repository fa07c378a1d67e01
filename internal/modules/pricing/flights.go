package pricing

import (
	"tourquote/internal/domain"
)

var cabinMultipliers = map[domain.CabinClass]float64{
	domain.CabinEconomy:        1.0,
	domain.CabinPremiumEconomy: 1.5,
	domain.CabinBusiness:       3.0,
	domain.CabinFirst:          5.0,
}

var passengerDiscountFactors = map[string]float64{
	"adult":   1.0,
	"child":   0.75,
	"infant":  0.1,
	"senior":  0.9,
	"student": 0.85,
}

var connectionSurcharges = map[domain.ConnectionType]float64{
	domain.ConnectionDirect:    0,
	domain.ConnectionShort:     50,
	domain.ConnectionMedium:    30,
	domain.ConnectionLong:      0,
	domain.ConnectionOvernight: -20,
}

const (
	checkedBagFee        = 50.0
	carryOnBagFee        = 25.0
	taxRateOfBase        = 0.12
	perSegmentFee        = 25.0
	internationalTaxFlat = 50.0
)

// EnrichedSegment is a flight segment with its derived attributes.
type EnrichedSegment struct {
	domain.FlightSegment
	DistanceKm      float64               `json:"distance_km"`
	DurationMinutes int                   `json:"duration_minutes"`
	Connection      domain.ConnectionType `json:"connection"`
	International   bool                  `json:"international"`
}

// FlightQuote is the priced outcome of one segment chain. AirMinutes counts
// flying time only; ElapsedMinutes adds connection dwell, so the two totals
// are reported as distinct named fields.
type FlightQuote struct {
	Segments            []EnrichedSegment `json:"segments"`
	BasePrice           float64           `json:"base_price"`
	CabinMultiplier     float64           `json:"cabin_multiplier"`
	PassengerFactor     float64           `json:"passenger_factor"`
	ConnectionSurcharge float64           `json:"connection_surcharge"`
	BaggageSurcharge    float64           `json:"baggage_surcharge"`
	TaxesAndFees        float64           `json:"taxes_and_fees"`
	TotalPrice          float64           `json:"total_price"`
	TotalDistanceKm     float64           `json:"total_distance_km"`
	AirMinutes          int               `json:"air_minutes"`
	ElapsedMinutes      int               `json:"elapsed_minutes"`
	Connections         int               `json:"connections"`
	International       bool              `json:"international"`
}

// ConnectionTypeFor buckets the ground time before a segment.
func ConnectionTypeFor(hours float64) domain.ConnectionType {
	switch {
	case hours <= 0:
		return domain.ConnectionDirect
	case hours <= 3:
		return domain.ConnectionShort
	case hours <= 6:
		return domain.ConnectionMedium
	case hours <= 12:
		return domain.ConnectionLong
	default:
		return domain.ConnectionOvernight
	}
}

func validateSegments(segments []domain.FlightSegment) error {
	if len(segments) == 0 {
		return validationf("flight requires at least one segment")
	}
	for i, seg := range segments {
		if seg.Origin == "" || seg.Destination == "" {
			return validationf("segment %d is missing origin or destination", i)
		}
		if seg.BasePrice < 0 {
			return validationf("segment %d base price must not be negative, got %.2f", i, seg.BasePrice)
		}
		if !seg.ArrivalTime.IsZero() && !seg.DepartureTime.IsZero() && !seg.ArrivalTime.After(seg.DepartureTime) {
			return validationf("segment %d must arrive after it departs", i)
		}
		if i == 0 {
			if seg.ConnectionTimeHours != 0 {
				return validationf("first segment must not carry a connection time")
			}
			continue
		}
		prev := segments[i-1]
		if prev.Destination != seg.Origin {
			return validationf("segment %d origin %s does not match previous destination %s", i, seg.Origin, prev.Destination)
		}
		if seg.ConnectionTimeHours < 0 {
			return validationf("segment %d connection time must not be negative", i)
		}
		if !prev.ArrivalTime.IsZero() && !seg.DepartureTime.IsZero() && !prev.ArrivalTime.Before(seg.DepartureTime) {
			return validationf("segment %d departs before the previous segment arrives", i)
		}
	}
	return nil
}

// EnrichSegments derives distance, duration, connection bucket and country
// crossing for every segment of a validated chain.
func (t RouteTable) EnrichSegments(segments []domain.FlightSegment) ([]EnrichedSegment, error) {
	if err := validateSegments(segments); err != nil {
		return nil, err
	}

	enriched := make([]EnrichedSegment, 0, len(segments))
	for i, seg := range segments {
		e := EnrichedSegment{
			FlightSegment: seg,
			DistanceKm:    t.Distance(seg.Origin, seg.Destination),
			International: t.CrossesBorder(seg.Origin, seg.Destination),
		}
		if !seg.ArrivalTime.IsZero() && !seg.DepartureTime.IsZero() {
			e.DurationMinutes = int(seg.ArrivalTime.Sub(seg.DepartureTime).Minutes())
		}
		if i == 0 {
			e.Connection = domain.ConnectionDirect
		} else {
			e.Connection = ConnectionTypeFor(seg.ConnectionTimeHours)
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}

// PriceFlight runs the composition pipeline in its fixed order: base prices,
// cabin multiplier, blended passenger discount, connection surcharge,
// baggage surcharge, taxes and fees. The final price is rounded once at the
// end of the pipeline.
func (t RouteTable) PriceFlight(f domain.Flight) (FlightQuote, error) {
	var zero FlightQuote

	segments, err := t.EnrichSegments(f.Segments)
	if err != nil {
		return zero, err
	}

	cabin, ok := cabinMultipliers[f.CabinClass]
	if !ok {
		return zero, validationf("unknown cabin class %q", f.CabinClass)
	}

	factor, err := blendedPassengerFactor(f.Passengers)
	if err != nil {
		return zero, err
	}
	if f.Baggage.Checked < 0 || f.Baggage.CarryOn < 0 {
		return zero, validationf("baggage counts must not be negative")
	}

	quote := FlightQuote{
		Segments:        segments,
		CabinMultiplier: cabin,
		PassengerFactor: factor,
		Connections:     len(segments) - 1,
	}

	var base float64
	for i, seg := range segments {
		base += seg.BasePrice
		quote.TotalDistanceKm += seg.DistanceKm
		quote.AirMinutes += seg.DurationMinutes
		quote.International = quote.International || seg.International
		if i > 0 {
			quote.ConnectionSurcharge += connectionSurcharges[seg.Connection]
			quote.ElapsedMinutes += int(seg.ConnectionTimeHours * 60)
		}
	}
	quote.ElapsedMinutes += quote.AirMinutes
	quote.BasePrice = round2(base)

	if f.Baggage.Checked > 1 {
		quote.BaggageSurcharge += float64(f.Baggage.Checked-1) * checkedBagFee
	}
	if f.Baggage.CarryOn > 1 {
		quote.BaggageSurcharge += float64(f.Baggage.CarryOn-1) * carryOnBagFee
	}

	taxes := taxRateOfBase*base + perSegmentFee*float64(len(segments))
	if quote.International {
		taxes += internationalTaxFlat
	}
	quote.TaxesAndFees = round2(taxes)

	quote.TotalPrice = round2(base*cabin*factor + quote.ConnectionSurcharge + quote.BaggageSurcharge + taxes)
	return quote, nil
}

// blendedPassengerFactor is the count-weighted average of the per-type
// discount factors.
func blendedPassengerFactor(p domain.PassengerCounts) (float64, error) {
	counts := []struct {
		kind string
		n    int
	}{
		{"adult", p.Adults},
		{"child", p.Children},
		{"infant", p.Infants},
		{"senior", p.Seniors},
		{"student", p.Students},
	}

	total := 0
	weighted := 0.0
	for _, c := range counts {
		if c.n < 0 {
			return 0, validationf("%s count must not be negative, got %d", c.kind, c.n)
		}
		total += c.n
		weighted += float64(c.n) * passengerDiscountFactors[c.kind]
	}
	if total == 0 {
		return 0, validationf("flight requires at least one passenger")
	}
	return weighted / float64(total), nil
}

package flightquote

import (
	"time"

	"tourquote/internal/domain"
	"tourquote/internal/modules/pricing"
)

type QuoteRequest struct {
	Segments   []domain.FlightSegment  `json:"segments" validate:"required,min=1,dive"`
	Passengers domain.PassengerCounts  `json:"passengers"`
	CabinClass string                  `json:"cabin_class"`
	Baggage    domain.BaggageAllowance `json:"baggage"`
}

func (r QuoteRequest) toDomain() (domain.Flight, error) {
	cabin := domain.CabinEconomy
	if r.CabinClass != "" {
		parsed, err := domain.ParseCabinClass(r.CabinClass)
		if err != nil {
			return domain.Flight{}, err
		}
		cabin = parsed
	}

	return domain.Flight{
		Segments:   r.Segments,
		Passengers: r.Passengers,
		CabinClass: cabin,
		Baggage:    r.Baggage,
	}, nil
}

type AlternativesRequest struct {
	Origin        string                  `json:"origin" validate:"required"`
	Destination   string                  `json:"destination" validate:"required"`
	DepartureDate *time.Time              `json:"departure_date"`
	CabinClass    string                  `json:"cabin_class"`
	Passengers    domain.PassengerCounts  `json:"passengers"`
	Baggage       domain.BaggageAllowance `json:"baggage"`
}

func (r AlternativesRequest) toRouteRequest() (pricing.RouteRequest, error) {
	cabin := domain.CabinEconomy
	if r.CabinClass != "" {
		parsed, err := domain.ParseCabinClass(r.CabinClass)
		if err != nil {
			return pricing.RouteRequest{}, err
		}
		cabin = parsed
	}

	req := pricing.RouteRequest{
		Origin:      r.Origin,
		Destination: r.Destination,
		CabinClass:  cabin,
		Passengers:  r.Passengers,
		Baggage:     r.Baggage,
	}
	if r.DepartureDate != nil {
		req.DepartureDate = *r.DepartureDate
	}
	return req, nil
}

type AlternativesResponse struct {
	Options []pricing.RouteOption `json:"options"`
	Cached  bool                  `json:"cached"`
}

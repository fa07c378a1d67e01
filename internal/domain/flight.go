package domain

import "time"

type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

func ParseCabinClass(s string) (CabinClass, error) {
	switch CabinClass(s) {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return CabinClass(s), nil
	}
	return "", ErrUnknownCabinClass
}

// ConnectionType buckets the ground time before a segment, taken from the
// previous segment's connection time.
type ConnectionType string

const (
	ConnectionDirect    ConnectionType = "direct"
	ConnectionShort     ConnectionType = "short"
	ConnectionMedium    ConnectionType = "medium"
	ConnectionLong      ConnectionType = "long"
	ConnectionOvernight ConnectionType = "overnight"
)

type PassengerCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children,omitempty"`
	Infants  int `json:"infants,omitempty"`
	Seniors  int `json:"seniors,omitempty"`
	Students int `json:"students,omitempty"`
}

func (p PassengerCounts) Total() int {
	return p.Adults + p.Children + p.Infants + p.Seniors + p.Students
}

type BaggageAllowance struct {
	Checked int `json:"checked"`
	CarryOn int `json:"carry_on"`
}

// FlightSegment is one leg of a chained itinerary. ConnectionTimeHours is
// the ground time before this segment and must be 0 on the first one.
type FlightSegment struct {
	Origin              string     `json:"origin" validate:"required"`
	Destination         string     `json:"destination" validate:"required"`
	DepartureTime       time.Time  `json:"departure_time"`
	ArrivalTime         time.Time  `json:"arrival_time"`
	Airline             string     `json:"airline,omitempty"`
	FlightNumber        string     `json:"flight_number,omitempty"`
	CabinClass          CabinClass `json:"cabin_class,omitempty"`
	BasePrice           float64    `json:"base_price" validate:"gte=0"`
	ConnectionTimeHours float64    `json:"connection_time_hours,omitempty"`
}

// Flight is an ordered segment chain with party and baggage info. Distance,
// duration, connections and price are derived by the calculator, never
// stored as source truth.
type Flight struct {
	Segments   []FlightSegment  `json:"segments" validate:"required,min=1"`
	Passengers PassengerCounts  `json:"passengers"`
	CabinClass CabinClass       `json:"cabin_class"`
	Baggage    BaggageAllowance `json:"baggage"`
}

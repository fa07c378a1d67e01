package pricing

import (
	"sort"
	"time"

	"tourquote/internal/domain"
)

// Airport is one registered location code. Unregistered codes fall back to
// the default distance and count as domestic.
type Airport struct {
	Code    string `json:"code"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// RouteTable is the static lookup data behind flight enrichment and
// fallback route discovery. It stands in for a live fare provider and stays
// deliberately small and finite.
type RouteTable struct {
	Airports          map[string]Airport
	DistancesKm       map[[2]string]float64
	Hubs              []string
	DefaultDistanceKm float64
	BaseFare          float64
	FarePerKm         float64
}

// DefaultRouteTable covers the operator's standard network.
func DefaultRouteTable() RouteTable {
	airports := []Airport{
		{Code: "BUE", City: "Buenos Aires", Country: "AR"},
		{Code: "USH", City: "Ushuaia", Country: "AR"},
		{Code: "BRC", City: "Bariloche", Country: "AR"},
		{Code: "MDZ", City: "Mendoza", Country: "AR"},
		{Code: "IGR", City: "Iguazu", Country: "AR"},
		{Code: "FTE", City: "El Calafate", Country: "AR"},
		{Code: "SCL", City: "Santiago", Country: "CL"},
		{Code: "GRU", City: "Sao Paulo", Country: "BR"},
		{Code: "LIM", City: "Lima", Country: "PE"},
		{Code: "MIA", City: "Miami", Country: "US"},
		{Code: "MAD", City: "Madrid", Country: "ES"},
	}

	byCode := make(map[string]Airport, len(airports))
	for _, a := range airports {
		byCode[a.Code] = a
	}

	distances := map[[2]string]float64{
		{"BUE", "USH"}: 2400,
		{"BUE", "BRC"}: 1640,
		{"BUE", "MDZ"}: 1050,
		{"BUE", "IGR"}: 1330,
		{"BUE", "FTE"}: 2600,
		{"BUE", "SCL"}: 1140,
		{"BUE", "GRU"}: 1700,
		{"BUE", "LIM"}: 3130,
		{"BUE", "MIA"}: 7100,
		{"BUE", "MAD"}: 10050,
		{"SCL", "LIM"}: 2450,
		{"SCL", "USH"}: 2350,
		{"GRU", "MIA"}: 6570,
		{"GRU", "MAD"}: 8370,
		{"LIM", "MIA"}: 4220,
		{"MIA", "USH"}: 9050,
		{"MIA", "MAD"}: 7100,
	}
	// routes are symmetric
	forward := make([][2]string, 0, len(distances))
	for pair := range distances {
		forward = append(forward, pair)
	}
	for _, pair := range forward {
		distances[[2]string{pair[1], pair[0]}] = distances[pair]
	}

	return RouteTable{
		Airports:          byCode,
		DistancesKm:       distances,
		Hubs:              []string{"BUE", "SCL", "GRU", "LIM", "MIA"},
		DefaultDistanceKm: 1500,
		BaseFare:          60,
		FarePerKm:         0.11,
	}
}

// Distance returns the registered route distance or the default fallback.
func (t RouteTable) Distance(origin, destination string) float64 {
	if km, ok := t.DistancesKm[[2]string{origin, destination}]; ok {
		return km
	}
	return t.DefaultDistanceKm
}

// HasDirectRoute reports whether the pair exists in the route table.
func (t RouteTable) HasDirectRoute(origin, destination string) bool {
	_, ok := t.DistancesKm[[2]string{origin, destination}]
	return ok
}

// CrossesBorder compares the registered countries of two airport codes.
// Unregistered codes are treated as domestic; that leniency is a documented
// simplification of the static table, not a defect.
func (t RouteTable) CrossesBorder(origin, destination string) bool {
	a, okA := t.Airports[origin]
	b, okB := t.Airports[destination]
	if !okA || !okB {
		return false
	}
	return a.Country != b.Country
}

// RouteOption is one discovered itinerary, priced via the standard pipeline.
type RouteOption struct {
	Stops []string    `json:"stops"`
	Quote FlightQuote `json:"quote"`
}

// RouteRequest asks for fallback itineraries between two airports.
type RouteRequest struct {
	Origin        string                 `json:"origin" validate:"required"`
	Destination   string                 `json:"destination" validate:"required"`
	DepartureDate time.Time              `json:"departure_date"`
	CabinClass    domain.CabinClass      `json:"cabin_class"`
	Passengers    domain.PassengerCounts `json:"passengers"`
	Baggage       domain.BaggageAllowance `json:"baggage"`
}

const (
	syntheticConnectionHours = 2
	syntheticCruiseKmh       = 800
	minSegmentMinutes        = 45
)

// FindAlternativeRoutes enumerates the direct route (when the table has
// one), one-stop routes through each hub and two-stop routes through each
// ordered hub pair, prices each through the pipeline and returns them
// sorted ascending by total price. This is table enumeration over a fixed
// hub set, not a graph search.
func (t RouteTable) FindAlternativeRoutes(req RouteRequest) ([]RouteOption, error) {
	if req.Origin == "" || req.Destination == "" {
		return nil, validationf("route request requires origin and destination")
	}
	if req.Origin == req.Destination {
		return nil, validationf("origin and destination must differ")
	}

	var paths [][]string
	if t.HasDirectRoute(req.Origin, req.Destination) {
		paths = append(paths, []string{req.Origin, req.Destination})
	}
	for _, hub := range t.Hubs {
		if hub == req.Origin || hub == req.Destination {
			continue
		}
		paths = append(paths, []string{req.Origin, hub, req.Destination})
	}
	for _, first := range t.Hubs {
		if first == req.Origin || first == req.Destination {
			continue
		}
		for _, second := range t.Hubs {
			if second == first || second == req.Origin || second == req.Destination {
				continue
			}
			paths = append(paths, []string{req.Origin, first, second, req.Destination})
		}
	}

	options := make([]RouteOption, 0, len(paths))
	for _, path := range paths {
		flight, err := t.syntheticFlight(path, req)
		if err != nil {
			return nil, err
		}
		quote, err := t.PriceFlight(flight)
		if err != nil {
			return nil, err
		}
		options = append(options, RouteOption{Stops: path, Quote: quote})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Quote.TotalPrice < options[j].Quote.TotalPrice
	})
	return options, nil
}

// syntheticFlight fabricates a plausible segment chain along a path, with
// distance-derived fares and flight times and a fixed short connection at
// every stop.
func (t RouteTable) syntheticFlight(path []string, req RouteRequest) (domain.Flight, error) {
	departure := req.DepartureDate
	if departure.IsZero() {
		departure = time.Now().Truncate(time.Hour).Add(24 * time.Hour)
	}

	cabin := req.CabinClass
	if cabin == "" {
		cabin = domain.CabinEconomy
	}

	segments := make([]domain.FlightSegment, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		km := t.Distance(path[i], path[i+1])
		minutes := int(km / syntheticCruiseKmh * 60)
		if minutes < minSegmentMinutes {
			minutes = minSegmentMinutes
		}

		connHours := 0.0
		if i > 0 {
			connHours = syntheticConnectionHours
			departure = departure.Add(syntheticConnectionHours * time.Hour)
		}

		arrival := departure.Add(time.Duration(minutes) * time.Minute)
		segments = append(segments, domain.FlightSegment{
			Origin:              path[i],
			Destination:         path[i+1],
			DepartureTime:       departure,
			ArrivalTime:         arrival,
			CabinClass:          cabin,
			BasePrice:           round2(t.BaseFare + km*t.FarePerKm),
			ConnectionTimeHours: connHours,
		})
		departure = arrival
	}

	return domain.Flight{
		Segments:   segments,
		Passengers: req.Passengers,
		CabinClass: cabin,
		Baggage:    req.Baggage,
	}, nil
}

package domain

import "time"

type CalculationType string

const (
	CalcPerPerson CalculationType = "per_person"
	CalcPerGroup  CalculationType = "per_group"
	CalcPerUnit   CalculationType = "per_unit"
	CalcPerDay    CalculationType = "per_day"
)

func ParseCalculationType(s string) (CalculationType, error) {
	switch CalculationType(s) {
	case CalcPerPerson, CalcPerGroup, CalcPerUnit, CalcPerDay:
		return CalculationType(s), nil
	}
	return "", ErrUnknownCalculationType
}

type AccommodationType string

const (
	AccommodationSingle AccommodationType = "single"
	AccommodationDouble AccommodationType = "double"
	AccommodationTriple AccommodationType = "triple"
)

func ParseAccommodationType(s string) (AccommodationType, error) {
	switch AccommodationType(s) {
	case AccommodationSingle, AccommodationDouble, AccommodationTriple:
		return AccommodationType(s), nil
	}
	return "", ErrUnknownAccommodationType
}

type EstimateStatus string

const (
	EstimateDraft  EstimateStatus = "draft"
	EstimatePriced EstimateStatus = "priced"
)

// Group is the party composition an estimate is priced for. Room counts are
// informational; room allocation is always derived from TotalPax.
type Group struct {
	TotalPax      int     `json:"total_pax" validate:"required,gt=0"`
	DoubleRooms   int     `json:"double_rooms,omitempty"`
	SingleRooms   int     `json:"single_rooms,omitempty"`
	TripleRooms   int     `json:"triple_rooms,omitempty"`
	GuidesCount   int     `json:"guides_count,omitempty"`
	MarkupPercent float64 `json:"markup_percent" validate:"gte=0,lte=100"`
}

type Hotel struct {
	Name              string            `json:"name"`
	AccommodationType AccommodationType `json:"accommodation_type" validate:"required"`
	PricePerRoom      float64           `json:"price_per_room" validate:"gte=0"`
	Nights            int               `json:"nights" validate:"required,gt=0"`
	PaxCount          int               `json:"pax_count,omitempty"`
	IsGuideHotel      bool              `json:"is_guide_hotel"`
	MarkupPercent     float64           `json:"markup_percent" validate:"gte=0,lte=100"`
}

type Activity struct {
	Name            string          `json:"name"`
	CalculationType CalculationType `json:"calculation_type" validate:"required"`
	BasePrice       float64         `json:"base_price" validate:"gte=0"`
	Quantity        float64         `json:"quantity,omitempty"`
	MarkupPercent   float64         `json:"markup_percent" validate:"gte=0,lte=100"`
}

type TourDay struct {
	DayNumber  int        `json:"day_number"`
	Title      string     `json:"title,omitempty"`
	Activities []Activity `json:"activities,omitempty"`
}

// OptionalService is an add-on priced per person unless another calculation
// type is set. Price and Cost are aliases in persisted records; Price wins
// when both are present.
type OptionalService struct {
	Name            string          `json:"name"`
	Price           float64         `json:"price,omitempty"`
	Cost            float64         `json:"cost,omitempty"`
	CalculationType CalculationType `json:"calculation_type,omitempty"`
	MarkupPercent   float64         `json:"markup_percent" validate:"gte=0,lte=100"`
}

func (s OptionalService) EffectivePrice() float64 {
	if s.Price != 0 {
		return s.Price
	}
	return s.Cost
}

// Estimate is the immutable input to the pricing engine. Calculators never
// mutate it; all pricing output lives in result records.
type Estimate struct {
	ID                   int64             `json:"id"`
	Reference            string            `json:"reference"`
	Name                 string            `json:"name"`
	Currency             string            `json:"currency"`
	Status               EstimateStatus    `json:"status"`
	Group                Group             `json:"group"`
	Hotels               []Hotel           `json:"hotels,omitempty"`
	Days                 []TourDay         `json:"days,omitempty"`
	OptionalServices     []OptionalService `json:"optional_services,omitempty"`
	Flights              []Flight          `json:"flights,omitempty"`
	GeneralMarkupPercent float64           `json:"general_markup_percent"`
	CreatedBy            int64             `json:"created_by"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
	PricedAt             *time.Time        `json:"priced_at,omitempty"`
}

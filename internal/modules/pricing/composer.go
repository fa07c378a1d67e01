package pricing

import (
	"log"

	"tourquote/internal/domain"
)

// DisplayMode selects which computed total an estimate surfaces. Both modes
// are always computed so callers can toggle the view without repricing.
type DisplayMode string

const (
	DisplayWithMarkup    DisplayMode = "with_markup"
	DisplayWithoutMarkup DisplayMode = "without_markup"
)

func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case DisplayWithMarkup, DisplayWithoutMarkup:
		return DisplayMode(s), nil
	case "":
		return DisplayWithMarkup, nil
	}
	return "", validationf("unknown display mode %q", s)
}

const (
	CategoryAccommodation    = "accommodation"
	CategoryActivities       = "activities"
	CategoryOptionalServices = "optional_services"
	CategoryFlights          = "flights"
)

// Engine composes estimate totals from the per-line calculators. It holds
// only static configuration, so one Engine may price any number of
// estimates concurrently.
type Engine struct {
	routes      RouteTable
	adjustments AdjustmentSettings
}

func NewEngine(routes RouteTable, adjustments AdjustmentSettings) (*Engine, error) {
	warnings, err := adjustments.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Println("pricing settings:", w)
	}
	return &Engine{routes: routes, adjustments: adjustments}, nil
}

func (e *Engine) Routes() RouteTable                  { return e.routes }
func (e *Engine) Adjustments() AdjustmentSettings     { return e.adjustments }
func (e *Engine) PriceFlight(f domain.Flight) (FlightQuote, error) {
	return e.routes.PriceFlight(f)
}
func (e *Engine) FindAlternativeRoutes(req RouteRequest) ([]RouteOption, error) {
	return e.routes.FindAlternativeRoutes(req)
}
func (e *Engine) Adjust(original float64, ctx AdjustmentContext) (domain.AdjustmentResult, error) {
	return ApplyAdjustments(original, ctx, e.adjustments)
}

// Compose prices every category of an estimate, then applies the general
// markup once on top of the summed category costs. Category markup and
// general markup are the two tiers; nothing compounds beyond that.
func (e *Engine) Compose(est domain.Estimate, mode DisplayMode) (domain.EstimateTotals, error) {
	var zero domain.EstimateTotals

	if mode != DisplayWithMarkup && mode != DisplayWithoutMarkup {
		return zero, validationf("unknown display mode %q", mode)
	}
	if est.Group.TotalPax <= 0 {
		return zero, validationf("estimate requires a positive party size, got %d", est.Group.TotalPax)
	}
	if est.GeneralMarkupPercent < 0 || est.GeneralMarkupPercent > 100 {
		return zero, validationf("general markup percent must be in [0,100], got %.2f", est.GeneralMarkupPercent)
	}

	accommodation := domain.CategoryTotal{Category: CategoryAccommodation}
	for _, h := range est.Hotels {
		r, err := PriceHotel(h, est.Group.TotalPax)
		if err != nil {
			return zero, err
		}
		accommodation.BaseCost = round2(accommodation.BaseCost + r.Subtotal)
		accommodation.MarkupAmount = round2(accommodation.MarkupAmount + r.MarkupAmount)
		accommodation.ItemCount++
	}
	accommodation.TotalWithMarkup = round2(accommodation.BaseCost + accommodation.MarkupAmount)

	dayTotals, err := PriceDays(est.Days, est.Group.TotalPax)
	if err != nil {
		return zero, err
	}
	activities := domain.CategoryTotal{
		Category:        CategoryActivities,
		BaseCost:        dayTotals.Subtotal,
		MarkupAmount:    dayTotals.MarkupAmount,
		TotalWithMarkup: dayTotals.Total,
		ItemCount:       dayTotals.ActivityCount,
	}

	services := domain.CategoryTotal{Category: CategoryOptionalServices}
	for _, svc := range est.OptionalServices {
		calcType := svc.CalculationType
		if calcType == "" {
			calcType = domain.CalcPerPerson
		}
		r, err := CalculateLine(LineInput{
			CalculationType: calcType,
			BasePrice:       svc.EffectivePrice(),
			MarkupPercent:   svc.MarkupPercent,
		}, est.Group.TotalPax)
		if err != nil {
			return zero, err
		}
		services.BaseCost = round2(services.BaseCost + r.Subtotal)
		services.MarkupAmount = round2(services.MarkupAmount + r.MarkupAmount)
		services.ItemCount++
	}
	services.TotalWithMarkup = round2(services.BaseCost + services.MarkupAmount)

	flights := domain.CategoryTotal{Category: CategoryFlights}
	for _, f := range est.Flights {
		quote, err := e.routes.PriceFlight(f)
		if err != nil {
			return zero, err
		}
		flights.BaseCost = round2(flights.BaseCost + quote.TotalPrice)
		flights.ItemCount++
	}
	flights.TotalWithMarkup = flights.BaseCost

	totals := domain.EstimateTotals{
		Currency:             est.Currency,
		Categories:           []domain.CategoryTotal{accommodation, activities, services, flights},
		GeneralMarkupPercent: est.GeneralMarkupPercent,
		DisplayMode:          string(mode),
	}

	for _, c := range totals.Categories {
		totals.WithoutMarkup.BaseTotal = round2(totals.WithoutMarkup.BaseTotal + c.BaseCost)
		totals.WithMarkup.BaseTotal = round2(totals.WithMarkup.BaseTotal + c.TotalWithMarkup)
	}
	for _, m := range []*domain.ModeTotals{&totals.WithoutMarkup, &totals.WithMarkup} {
		m.GeneralMarkupAmount = round2(m.BaseTotal * est.GeneralMarkupPercent / 100)
		m.FinalTotal = round2(m.BaseTotal + m.GeneralMarkupAmount)
		if err := CheckTotals(m.BaseTotal, m.GeneralMarkupAmount, m.FinalTotal); err != nil {
			return zero, err
		}
	}

	if mode == DisplayWithMarkup {
		totals.DisplayTotal = totals.WithMarkup.FinalTotal
	} else {
		totals.DisplayTotal = totals.WithoutMarkup.FinalTotal
	}
	return totals, nil
}

package pricing

import "tourquote/internal/domain"

// DayTotal sums one tour day's activity lines.
type DayTotal struct {
	DayNumber     int     `json:"day_number"`
	Subtotal      float64 `json:"subtotal"`
	MarkupAmount  float64 `json:"markup_amount"`
	Total         float64 `json:"total"`
	ActivityCount int     `json:"activity_count"`
}

// ActivityTotals aggregates every day of an estimate.
type ActivityTotals struct {
	Subtotal      float64    `json:"subtotal"`
	MarkupAmount  float64    `json:"markup_amount"`
	Total         float64    `json:"total"`
	DayCount      int        `json:"day_count"`
	ActivityCount int        `json:"activity_count"`
	Days          []DayTotal `json:"days,omitempty"`
}

// PriceActivity prices a single activity line for the given party size.
func PriceActivity(a domain.Activity, participants int) (domain.CalculationResult, error) {
	return CalculateLine(LineInput{
		CalculationType: a.CalculationType,
		BasePrice:       a.BasePrice,
		Quantity:        a.Quantity,
		MarkupPercent:   a.MarkupPercent,
	}, participants)
}

// PriceDays sums activity results per day, then across days. Empty activity
// lists produce all-zero totals, not an error.
func PriceDays(days []domain.TourDay, participants int) (ActivityTotals, error) {
	totals := ActivityTotals{DayCount: len(days)}

	for _, day := range days {
		dt := DayTotal{DayNumber: day.DayNumber, ActivityCount: len(day.Activities)}
		for _, a := range day.Activities {
			r, err := PriceActivity(a, participants)
			if err != nil {
				return ActivityTotals{}, err
			}
			dt.Subtotal = round2(dt.Subtotal + r.Subtotal)
			dt.MarkupAmount = round2(dt.MarkupAmount + r.MarkupAmount)
		}
		dt.Total = round2(dt.Subtotal + dt.MarkupAmount)

		totals.Subtotal = round2(totals.Subtotal + dt.Subtotal)
		totals.MarkupAmount = round2(totals.MarkupAmount + dt.MarkupAmount)
		totals.ActivityCount += dt.ActivityCount
		totals.Days = append(totals.Days, dt)
	}

	totals.Total = round2(totals.Subtotal + totals.MarkupAmount)
	return totals, nil
}

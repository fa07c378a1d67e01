package domain

// CalculationResult is the priced outcome of a single line item.
// Total always equals Subtotal + MarkupAmount rounded to 2 digits.
type CalculationResult struct {
	Subtotal      float64 `json:"subtotal"`
	MarkupPercent float64 `json:"markup_percent"`
	MarkupAmount  float64 `json:"markup_amount"`
	Total         float64 `json:"total"`
}

// AdjustmentLine is one matched discount or surcharge rule.
type AdjustmentLine struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Percent     float64 `json:"percent"`
	Amount      float64 `json:"amount"`
}

// AdjustmentResult reconciles an original cost with all matched rules in a
// single pass: FinalCost = round(Original - TotalDiscount + TotalSurcharge).
type AdjustmentResult struct {
	OriginalCost   float64          `json:"original_cost"`
	Discounts      []AdjustmentLine `json:"discounts,omitempty"`
	Surcharges     []AdjustmentLine `json:"surcharges,omitempty"`
	TotalDiscount  float64          `json:"total_discount"`
	TotalSurcharge float64          `json:"total_surcharge"`
	FinalCost      float64          `json:"final_cost"`
}

// CategoryTotal carries both display modes for one estimate category so the
// caller can toggle views without a new pricing pass.
type CategoryTotal struct {
	Category        string  `json:"category"`
	BaseCost        float64 `json:"base_cost"`
	MarkupAmount    float64 `json:"markup_amount"`
	TotalWithMarkup float64 `json:"total_with_markup"`
	ItemCount       int     `json:"item_count"`
}

// ModeTotals is the estimate-level roll-up for one display mode.
type ModeTotals struct {
	BaseTotal           float64 `json:"base_total"`
	GeneralMarkupAmount float64 `json:"general_markup_amount"`
	FinalTotal          float64 `json:"final_total"`
}

type EstimateTotals struct {
	Currency             string          `json:"currency"`
	Categories           []CategoryTotal `json:"categories"`
	GeneralMarkupPercent float64         `json:"general_markup_percent"`
	WithoutMarkup        ModeTotals      `json:"without_markup"`
	WithMarkup           ModeTotals      `json:"with_markup"`
	DisplayMode          string          `json:"display_mode"`
	DisplayTotal         float64         `json:"display_total"`
}

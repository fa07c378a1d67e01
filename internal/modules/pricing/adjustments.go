package pricing

import (
	"fmt"
	"sort"

	"tourquote/internal/domain"
)

// GroupTier grants a discount once the party size reaches MinPax. Tiers are
// not cumulative: only the best-matching tier applies.
type GroupTier struct {
	MinPax  int     `json:"min_pax"`
	Percent float64 `json:"percent"`
}

// AdjustmentSettings holds the configured discount and surcharge rule
// tables, keyed by category. Seasonal discounts and surcharges are two
// explicit tables so a season can never be both at once.
type AdjustmentSettings struct {
	GroupTiers               []GroupTier        `json:"group_tiers"`
	RepeatClientPercent      float64            `json:"repeat_client_percent"`
	VIPClientPercent         float64            `json:"vip_client_percent"`
	SeasonDiscounts          map[string]float64 `json:"season_discounts"`
	SeasonSurcharges         map[string]float64 `json:"season_surcharges"`
	UrgencySurcharges        map[string]float64 `json:"urgency_surcharges"`
	SpecialServiceSurcharges map[string]float64 `json:"special_service_surcharges"`
}

// AdjustmentContext describes the booking being adjusted.
type AdjustmentContext struct {
	TotalPax        int      `json:"total_pax"`
	RepeatClient    bool     `json:"repeat_client"`
	VIPClient       bool     `json:"vip_client"`
	Season          string   `json:"season,omitempty"`
	Urgency         string   `json:"urgency,omitempty"`
	SpecialServices []string `json:"special_services,omitempty"`
}

// DefaultAdjustmentSettings returns the operator's standard rule tables.
func DefaultAdjustmentSettings() AdjustmentSettings {
	return AdjustmentSettings{
		GroupTiers: []GroupTier{
			{MinPax: 10, Percent: 3},
			{MinPax: 20, Percent: 5},
			{MinPax: 30, Percent: 8},
			{MinPax: 50, Percent: 12},
		},
		RepeatClientPercent: 2,
		VIPClientPercent:    5,
		SeasonDiscounts: map[string]float64{
			"low":      10,
			"shoulder": 5,
		},
		SeasonSurcharges: map[string]float64{
			"high": 8,
			"peak": 15,
		},
		UrgencySurcharges: map[string]float64{
			"same_day":  20,
			"next_day":  12,
			"same_week": 6,
		},
		SpecialServiceSurcharges: map[string]float64{
			"private_guide":      5,
			"accessible_vehicle": 4,
			"late_checkout":      2,
			"photography":        3,
		},
	}
}

// Validate rejects percentages outside [0,100] and reports a non-fatal
// warning for every rule category with no configuration.
func (s AdjustmentSettings) Validate() ([]string, error) {
	var warnings []string

	checkPercent := func(name string, v float64) error {
		if v < 0 || v > 100 {
			return validationf("%s percent must be in [0,100], got %.2f", name, v)
		}
		return nil
	}

	if len(s.GroupTiers) == 0 {
		warnings = append(warnings, "no group size tiers configured")
	}
	for _, t := range s.GroupTiers {
		if t.MinPax <= 0 {
			return warnings, validationf("group tier threshold must be positive, got %d", t.MinPax)
		}
		if err := checkPercent("group tier", t.Percent); err != nil {
			return warnings, err
		}
	}
	if err := checkPercent("repeat client", s.RepeatClientPercent); err != nil {
		return warnings, err
	}
	if err := checkPercent("VIP client", s.VIPClientPercent); err != nil {
		return warnings, err
	}

	tables := []struct {
		name       string
		rules      map[string]float64
		isDiscount bool
	}{
		{"season discount", s.SeasonDiscounts, true},
		{"season surcharge", s.SeasonSurcharges, false},
		{"urgency surcharge", s.UrgencySurcharges, false},
		{"special service surcharge", s.SpecialServiceSurcharges, false},
	}
	for _, tbl := range tables {
		if len(tbl.rules) == 0 {
			warnings = append(warnings, fmt.Sprintf("no %s rules configured", tbl.name))
			continue
		}
		for key, pct := range tbl.rules {
			if tbl.isDiscount {
				if err := checkPercent(tbl.name+" "+key, pct); err != nil {
					return warnings, err
				}
			} else if pct < 0 {
				return warnings, validationf("%s %s percent must not be negative, got %.2f", tbl.name, key, pct)
			}
		}
	}

	for season := range s.SeasonDiscounts {
		if _, both := s.SeasonSurcharges[season]; both {
			return warnings, validationf("season %q configured as both discount and surcharge", season)
		}
	}

	return warnings, nil
}

// ApplyAdjustments resolves every matching rule against originalCost and
// reconciles them in a single pass over the original cost; discounts and
// surcharges are never compounded sequentially.
func ApplyAdjustments(originalCost float64, ctx AdjustmentContext, s AdjustmentSettings) (domain.AdjustmentResult, error) {
	var zero domain.AdjustmentResult

	if originalCost < 0 {
		return zero, validationf("original cost must not be negative, got %.2f", originalCost)
	}
	if ctx.TotalPax <= 0 {
		return zero, validationf("total pax must be positive, got %d", ctx.TotalPax)
	}
	if _, err := s.Validate(); err != nil {
		return zero, err
	}

	result := domain.AdjustmentResult{OriginalCost: round2(originalCost)}

	addDiscount := func(kind, desc string, pct float64) {
		amount := round2(result.OriginalCost * pct / 100)
		result.Discounts = append(result.Discounts, domain.AdjustmentLine{
			Type: kind, Description: desc, Percent: pct, Amount: amount,
		})
		result.TotalDiscount = round2(result.TotalDiscount + amount)
	}
	addSurcharge := func(kind, desc string, pct float64) {
		amount := round2(result.OriginalCost * pct / 100)
		result.Surcharges = append(result.Surcharges, domain.AdjustmentLine{
			Type: kind, Description: desc, Percent: pct, Amount: amount,
		})
		result.TotalSurcharge = round2(result.TotalSurcharge + amount)
	}

	if tier, ok := bestGroupTier(s.GroupTiers, ctx.TotalPax); ok {
		addDiscount("group_size", fmt.Sprintf("group of %d (tier %d+)", ctx.TotalPax, tier.MinPax), tier.Percent)
	}

	if ctx.RepeatClient && s.RepeatClientPercent > 0 {
		addDiscount("loyalty", "repeat client", s.RepeatClientPercent)
	}
	if ctx.VIPClient && s.VIPClientPercent > 0 {
		addDiscount("loyalty", "VIP client", s.VIPClientPercent)
	}

	if ctx.Season != "" {
		if pct, ok := s.SeasonDiscounts[ctx.Season]; ok {
			addDiscount("seasonal", ctx.Season+" season", pct)
		} else if pct, ok := s.SeasonSurcharges[ctx.Season]; ok {
			addSurcharge("seasonal", ctx.Season+" season", pct)
		}
	}

	if ctx.Urgency != "" {
		if pct, ok := s.UrgencySurcharges[ctx.Urgency]; ok {
			addSurcharge("urgency", ctx.Urgency+" booking", pct)
		}
	}

	services := append([]string(nil), ctx.SpecialServices...)
	sort.Strings(services)
	for _, svc := range services {
		if pct, ok := s.SpecialServiceSurcharges[svc]; ok {
			addSurcharge("special_service", svc, pct)
		}
	}

	result.FinalCost = round2(result.OriginalCost - result.TotalDiscount + result.TotalSurcharge)

	if err := checkIntegrity("adjusted cost",
		round2(result.OriginalCost-result.TotalDiscount+result.TotalSurcharge),
		result.FinalCost); err != nil {
		return zero, err
	}
	return result, nil
}

// bestGroupTier picks the highest discount among qualifying tiers.
func bestGroupTier(tiers []GroupTier, pax int) (GroupTier, bool) {
	var best GroupTier
	found := false
	for _, t := range tiers {
		if pax >= t.MinPax && (!found || t.Percent > best.Percent) {
			best = t
			found = true
		}
	}
	return best, found
}

package pricing

import (
	"strings"

	"tourquote/internal/domain"
)

// Suggestion is an advisory guess at pricing fields for a newly added
// activity, derived from its free-text name. The engine never consults it;
// callers hand accepted values back in as ordinary input.
type Suggestion struct {
	CalculationType domain.CalculationType `json:"calculation_type"`
	BasePrice       float64                `json:"base_price"`
	MarkupPercent   float64                `json:"markup_percent"`
	Confidence      float64                `json:"confidence"`
	MatchedKeyword  string                 `json:"matched_keyword,omitempty"`
}

type suggestionRule struct {
	keywords   []string
	suggestion Suggestion
}

var suggestionRules = []suggestionRule{
	{
		keywords: []string{"transfer", "transport", "bus", "shuttle", "van"},
		suggestion: Suggestion{
			CalculationType: domain.CalcPerGroup,
			BasePrice:       250, MarkupPercent: 10, Confidence: 0.8,
		},
	},
	{
		keywords: []string{"guide", "guiding"},
		suggestion: Suggestion{
			CalculationType: domain.CalcPerDay,
			BasePrice:       180, MarkupPercent: 12, Confidence: 0.8,
		},
	},
	{
		keywords: []string{"museum", "entrance", "ticket", "admission"},
		suggestion: Suggestion{
			CalculationType: domain.CalcPerPerson,
			BasePrice:       15, MarkupPercent: 10, Confidence: 0.75,
		},
	},
	{
		keywords: []string{"dinner", "lunch", "breakfast", "meal", "tasting"},
		suggestion: Suggestion{
			CalculationType: domain.CalcPerPerson,
			BasePrice:       35, MarkupPercent: 15, Confidence: 0.7,
		},
	},
	{
		keywords: []string{"excursion", "tour", "trek", "hike", "cruise", "safari"},
		suggestion: Suggestion{
			CalculationType: domain.CalcPerPerson,
			BasePrice:       45, MarkupPercent: 15, Confidence: 0.65,
		},
	},
	{
		keywords: []string{"rental", "equipment", "bike", "kayak"},
		suggestion: Suggestion{
			CalculationType: domain.CalcPerUnit,
			BasePrice:       30, MarkupPercent: 12, Confidence: 0.6,
		},
	},
}

// SuggestActivityPricing guesses calculation type, base price and markup for
// an activity name by keyword match. The first rule whose keyword appears
// wins; unmatched names fall back to a low-confidence per-person default.
func SuggestActivityPricing(name string) Suggestion {
	lowered := strings.ToLower(strings.TrimSpace(name))

	for _, rule := range suggestionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				s := rule.suggestion
				s.MatchedKeyword = kw
				return s
			}
		}
	}

	return Suggestion{
		CalculationType: domain.CalcPerPerson,
		BasePrice:       25,
		MarkupPercent:   10,
		Confidence:      0.2,
	}
}

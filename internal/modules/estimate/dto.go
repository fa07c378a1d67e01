package estimate

import "tourquote/internal/domain"

type CreateEstimateRequest struct {
	Name                 string                   `json:"name" validate:"required"`
	Currency             string                   `json:"currency" validate:"required,len=3"`
	Group                domain.Group             `json:"group" validate:"required"`
	Hotels               []domain.Hotel           `json:"hotels,omitempty"`
	Days                 []domain.TourDay         `json:"days,omitempty"`
	OptionalServices     []domain.OptionalService `json:"optional_services,omitempty"`
	Flights              []domain.Flight          `json:"flights,omitempty"`
	GeneralMarkupPercent float64                  `json:"general_markup_percent" validate:"gte=0,lte=100"`
}

type UpdateEstimateRequest struct {
	Name                 *string                   `json:"name,omitempty"`
	Currency             *string                   `json:"currency,omitempty"`
	Group                *domain.Group             `json:"group,omitempty"`
	Hotels               *[]domain.Hotel           `json:"hotels,omitempty"`
	Days                 *[]domain.TourDay         `json:"days,omitempty"`
	OptionalServices     *[]domain.OptionalService `json:"optional_services,omitempty"`
	Flights              *[]domain.Flight          `json:"flights,omitempty"`
	GeneralMarkupPercent *float64                  `json:"general_markup_percent,omitempty"`
}

type AdjustRequest struct {
	RepeatClient    bool     `json:"repeat_client"`
	VIPClient       bool     `json:"vip_client"`
	Season          string   `json:"season,omitempty"`
	Urgency         string   `json:"urgency,omitempty"`
	SpecialServices []string `json:"special_services,omitempty"`
}

type SuggestRequest struct {
	Name string `json:"name" validate:"required"`
}

package flightquote

import (
	"context"
	"log"

	"tourquote/internal/domain"
	"tourquote/internal/modules/pricing"
)

type Service struct {
	provider FareProvider
	cache    Cache
}

func NewService(provider FareProvider, cache Cache) *Service {
	return &Service{provider: provider, cache: cache}
}

func (s *Service) Quote(ctx context.Context, flight domain.Flight) (pricing.FlightQuote, error) {
	return s.provider.Quote(ctx, flight)
}

// Alternatives answers from cache when it can; a cache write failure is
// logged and the fresh result returned anyway.
func (s *Service) Alternatives(ctx context.Context, req pricing.RouteRequest) ([]pricing.RouteOption, bool, error) {
	if options, ok := s.cache.Get(ctx, req); ok {
		return options, true, nil
	}

	options, err := s.provider.Alternatives(ctx, req)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, req, options); err != nil {
		log.Printf("flightquote: cache write failed: %v", err)
	}
	return options, false, nil
}

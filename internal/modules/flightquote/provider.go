package flightquote

import (
	"context"

	"tourquote/internal/domain"
	"tourquote/internal/modules/pricing"
)

// FareProvider answers quote and route-discovery requests. The static table
// provider is the only implementation today; live GDS connectors would slot
// in behind the same interface.
type FareProvider interface {
	Name() string
	Quote(ctx context.Context, flight domain.Flight) (pricing.FlightQuote, error)
	Alternatives(ctx context.Context, req pricing.RouteRequest) ([]pricing.RouteOption, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}

// StaticProvider serves fares from the engine's route table. It still goes
// through the limiter so swapping in a live provider changes no call sites.
type StaticProvider struct {
	engine  *pricing.Engine
	limiter *ProviderLimiter
}

func NewStaticProvider(engine *pricing.Engine, limiter *ProviderLimiter) *StaticProvider {
	return &StaticProvider{engine: engine, limiter: limiter}
}

func (p *StaticProvider) Name() string {
	return "static"
}

func (p *StaticProvider) Quote(ctx context.Context, flight domain.Flight) (pricing.FlightQuote, error) {
	if err := p.limiter.Wait(ctx, p.Name()); err != nil {
		return pricing.FlightQuote{}, NewProviderError(p.Name(), err)
	}
	return p.engine.PriceFlight(flight)
}

func (p *StaticProvider) Alternatives(ctx context.Context, req pricing.RouteRequest) ([]pricing.RouteOption, error) {
	if err := p.limiter.Wait(ctx, p.Name()); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	return p.engine.FindAlternativeRoutes(req)
}

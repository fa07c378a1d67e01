package estimate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tourquote/internal/domain"
	"tourquote/internal/modules/pricing"
	"tourquote/internal/repository"

	"github.com/google/uuid"
)

type Service struct {
	estimates EstimateRepository
	engine    PricingEngine
	notifier  TotalsNotifier
}

func NewService(estimates EstimateRepository, engine PricingEngine, notifier TotalsNotifier) *Service {
	return &Service{
		estimates: estimates,
		engine:    engine,
		notifier:  notifier,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateEstimateRequest) (*domain.Estimate, error) {
	if req.Group.TotalPax <= 0 {
		return nil, fmt.Errorf("%w: group requires a positive party size", pricing.ErrValidation)
	}

	e := &domain.Estimate{
		Reference:            newReference(),
		Name:                 req.Name,
		Currency:             strings.ToUpper(req.Currency),
		Status:               domain.EstimateDraft,
		Group:                req.Group,
		Hotels:               req.Hotels,
		Days:                 req.Days,
		OptionalServices:     req.OptionalServices,
		Flights:              req.Flights,
		GeneralMarkupPercent: req.GeneralMarkupPercent,
		CreatedBy:            userID,
	}

	if err := s.estimates.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicateReference) {
			// reference collisions are vanishingly rare; retry once
			e.Reference = newReference()
			if err := s.estimates.Create(ctx, e); err != nil {
				return nil, err
			}
			return e, nil
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*domain.Estimate, error) {
	e, err := s.estimates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEstimateNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if e.CreatedBy != userID {
		return nil, ErrForbidden
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Estimate, int64, error) {
	return s.estimates.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateEstimateRequest) (*domain.Estimate, error) {
	e, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Currency != nil {
		e.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Group != nil {
		if req.Group.TotalPax <= 0 {
			return nil, fmt.Errorf("%w: group requires a positive party size", pricing.ErrValidation)
		}
		e.Group = *req.Group
	}
	if req.Hotels != nil {
		e.Hotels = *req.Hotels
	}
	if req.Days != nil {
		e.Days = *req.Days
	}
	if req.OptionalServices != nil {
		e.OptionalServices = *req.OptionalServices
	}
	if req.Flights != nil {
		e.Flights = *req.Flights
	}
	if req.GeneralMarkupPercent != nil {
		e.GeneralMarkupPercent = *req.GeneralMarkupPercent
	}

	// any change invalidates previously computed totals
	e.Status = domain.EstimateDraft

	if err := s.estimates.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.estimates.Delete(ctx, id)
}

// Price runs the composer over a stored estimate, persists the totals back
// onto the record and notifies live subscribers. Integrity violations are
// engine bugs and get logged loudly before propagating.
func (s *Service) Price(ctx context.Context, userID, id int64, mode pricing.DisplayMode) (domain.EstimateTotals, error) {
	var zero domain.EstimateTotals

	e, err := s.Get(ctx, userID, id)
	if err != nil {
		return zero, err
	}

	totals, err := s.engine.Compose(*e, mode)
	if err != nil {
		var ie *pricing.IntegrityError
		if errors.As(err, &ie) {
			log.Printf("PRICING INTEGRITY FAILURE on estimate %d (%s): %v", e.ID, e.Reference, ie)
		}
		return zero, err
	}

	if err := s.estimates.SaveTotals(ctx, id, totals); err != nil {
		return zero, err
	}

	if s.notifier != nil {
		s.notifier.NotifyTotals(id, totals)
	}
	return totals, nil
}

// Adjust applies the operator's discount/surcharge tables to an estimate's
// current with-markup total.
func (s *Service) Adjust(ctx context.Context, userID, id int64, req AdjustRequest) (domain.AdjustmentResult, error) {
	var zero domain.AdjustmentResult

	e, err := s.Get(ctx, userID, id)
	if err != nil {
		return zero, err
	}

	totals, err := s.engine.Compose(*e, pricing.DisplayWithMarkup)
	if err != nil {
		return zero, err
	}

	return s.engine.Adjust(totals.WithMarkup.FinalTotal, pricing.AdjustmentContext{
		TotalPax:        e.Group.TotalPax,
		RepeatClient:    req.RepeatClient,
		VIPClient:       req.VIPClient,
		Season:          req.Season,
		Urgency:         req.Urgency,
		SpecialServices: req.SpecialServices,
	})
}

func newReference() string {
	return "EST-" + strings.ToUpper(uuid.NewString()[:8])
}

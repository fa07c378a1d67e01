package estimate

import (
	"context"

	"tourquote/internal/domain"
	"tourquote/internal/modules/pricing"
)

type EstimateRepository interface {
	Create(ctx context.Context, e *domain.Estimate) error
	GetByID(ctx context.Context, id int64) (*domain.Estimate, error)
	GetByReference(ctx context.Context, reference string) (*domain.Estimate, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Estimate, int64, error)
	Update(ctx context.Context, e *domain.Estimate) error
	SaveTotals(ctx context.Context, id int64, totals domain.EstimateTotals) error
	Delete(ctx context.Context, id int64) error
}

type PricingEngine interface {
	Compose(est domain.Estimate, mode pricing.DisplayMode) (domain.EstimateTotals, error)
	Adjust(original float64, ctx pricing.AdjustmentContext) (domain.AdjustmentResult, error)
}

// TotalsNotifier pushes freshly computed totals to live subscribers.
type TotalsNotifier interface {
	NotifyTotals(estimateID int64, totals domain.EstimateTotals)
}

package estimate

import (
	"context"
	"testing"

	"tourquote/internal/domain"
	"tourquote/internal/modules/pricing"
	"tourquote/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEstimateRepository struct {
	mock.Mock
}

func (m *MockEstimateRepository) Create(ctx context.Context, e *domain.Estimate) error {
	args := m.Called(ctx, e)
	if e != nil {
		e.ID = 42
	}
	return args.Error(0)
}

func (m *MockEstimateRepository) GetByID(ctx context.Context, id int64) (*domain.Estimate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimate), args.Error(1)
}

func (m *MockEstimateRepository) GetByReference(ctx context.Context, reference string) (*domain.Estimate, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimate), args.Error(1)
}

func (m *MockEstimateRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Estimate, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Estimate), args.Get(1).(int64), args.Error(2)
}

func (m *MockEstimateRepository) Update(ctx context.Context, e *domain.Estimate) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEstimateRepository) SaveTotals(ctx context.Context, id int64, totals domain.EstimateTotals) error {
	args := m.Called(ctx, id, totals)
	return args.Error(0)
}

func (m *MockEstimateRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyTotals(estimateID int64, totals domain.EstimateTotals) {
	m.Called(estimateID, totals)
}

func realEngine(t *testing.T) *pricing.Engine {
	t.Helper()
	engine, err := pricing.NewEngine(pricing.DefaultRouteTable(), pricing.DefaultAdjustmentSettings())
	require.NoError(t, err)
	return engine
}

func storedEstimate(userID int64) *domain.Estimate {
	return &domain.Estimate{
		ID:                   42,
		Reference:            "EST-TEST0001",
		Name:                 "Mendoza wine tour",
		Currency:             "USD",
		Status:               domain.EstimateDraft,
		Group:                domain.Group{TotalPax: 4},
		GeneralMarkupPercent: 10,
		Hotels: []domain.Hotel{
			{AccommodationType: domain.AccommodationDouble, PricePerRoom: 120, Nights: 3, MarkupPercent: 10},
		},
		CreatedBy: userID,
	}
}

func TestService_Create(t *testing.T) {
	repo := new(MockEstimateRepository)
	svc := NewService(repo, realEngine(t), nil)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Estimate")).Return(nil)

	e, err := svc.Create(context.Background(), 7, CreateEstimateRequest{
		Name:     "Mendoza wine tour",
		Currency: "usd",
		Group:    domain.Group{TotalPax: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), e.ID)
	assert.Equal(t, "USD", e.Currency)
	assert.Equal(t, domain.EstimateDraft, e.Status)
	assert.Contains(t, e.Reference, "EST-")
	repo.AssertExpectations(t)
}

func TestService_Create_RejectsEmptyGroup(t *testing.T) {
	svc := NewService(new(MockEstimateRepository), realEngine(t), nil)

	_, err := svc.Create(context.Background(), 7, CreateEstimateRequest{
		Name:     "No group",
		Currency: "USD",
	})
	assert.ErrorIs(t, err, pricing.ErrValidation)
}

func TestService_Create_RetriesOnDuplicateReference(t *testing.T) {
	repo := new(MockEstimateRepository)
	svc := NewService(repo, realEngine(t), nil)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Estimate")).
		Return(repository.ErrDuplicateReference).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Estimate")).
		Return(nil).Once()

	_, err := svc.Create(context.Background(), 7, CreateEstimateRequest{
		Name:     "Collision",
		Currency: "USD",
		Group:    domain.Group{TotalPax: 2},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Get_EnforcesOwnership(t *testing.T) {
	repo := new(MockEstimateRepository)
	svc := NewService(repo, realEngine(t), nil)

	repo.On("GetByID", mock.Anything, int64(42)).Return(storedEstimate(7), nil)

	_, err := svc.Get(context.Background(), 99, 42)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Price_PersistsAndNotifies(t *testing.T) {
	repo := new(MockEstimateRepository)
	notifier := new(MockNotifier)
	svc := NewService(repo, realEngine(t), notifier)

	repo.On("GetByID", mock.Anything, int64(42)).Return(storedEstimate(7), nil)
	repo.On("SaveTotals", mock.Anything, int64(42), mock.AnythingOfType("domain.EstimateTotals")).Return(nil)
	notifier.On("NotifyTotals", int64(42), mock.AnythingOfType("domain.EstimateTotals")).Return()

	totals, err := svc.Price(context.Background(), 7, 42, pricing.DisplayWithMarkup)
	require.NoError(t, err)

	// 2 doubles x 120 x 3 = 720 base, 72 category markup, then 10% general
	assert.Equal(t, 720.00, totals.WithoutMarkup.BaseTotal)
	assert.Equal(t, 792.00, totals.WithMarkup.BaseTotal)
	assert.Equal(t, 871.20, totals.WithMarkup.FinalTotal)
	assert.Equal(t, totals.WithMarkup.FinalTotal, totals.DisplayTotal)

	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestService_Price_NotFound(t *testing.T) {
	repo := new(MockEstimateRepository)
	svc := NewService(repo, realEngine(t), nil)

	repo.On("GetByID", mock.Anything, int64(5)).Return(nil, repository.ErrEstimateNotFound)

	_, err := svc.Price(context.Background(), 7, 5, pricing.DisplayWithMarkup)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Adjust(t *testing.T) {
	repo := new(MockEstimateRepository)
	svc := NewService(repo, realEngine(t), nil)

	est := storedEstimate(7)
	est.Group.TotalPax = 25
	repo.On("GetByID", mock.Anything, int64(42)).Return(est, nil)

	result, err := svc.Adjust(context.Background(), 7, 42, AdjustRequest{
		RepeatClient: true,
		Season:       "peak",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Discounts)
	assert.NotEmpty(t, result.Surcharges)
	assert.InDelta(t,
		result.OriginalCost-result.TotalDiscount+result.TotalSurcharge,
		result.FinalCost, 0.011)
}

func TestService_Update_ResetsStatusToDraft(t *testing.T) {
	repo := new(MockEstimateRepository)
	svc := NewService(repo, realEngine(t), nil)

	est := storedEstimate(7)
	est.Status = domain.EstimatePriced
	repo.On("GetByID", mock.Anything, int64(42)).Return(est, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e *domain.Estimate) bool {
		return e.Status == domain.EstimateDraft
	})).Return(nil)

	name := "Renamed tour"
	_, err := svc.Update(context.Background(), 7, 42, UpdateEstimateRequest{Name: &name})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tourquote/internal/database"
	"tourquote/internal/domain"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(UserMigrationModel(), EstimateMigrationModel()))
	return db
}

func sampleEstimate() *domain.Estimate {
	return &domain.Estimate{
		Reference: "EST-ABCD1234",
		Name:      "Patagonia loop",
		Currency:  "USD",
		Status:    domain.EstimateDraft,
		Group:     domain.Group{TotalPax: 6},
		Hotels: []domain.Hotel{
			{Name: "Hotel Sur", AccommodationType: domain.AccommodationDouble, PricePerRoom: 120, Nights: 2, MarkupPercent: 10},
		},
		OptionalServices: []domain.OptionalService{
			{Name: "Insurance", Price: 30, MarkupPercent: 5},
		},
		GeneralMarkupPercent: 8,
		CreatedBy:            1,
	}
}

func TestEstimateRoundTrip(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewEstimateRepository(db)
	ctx := context.Background()

	est := sampleEstimate()
	require.NoError(t, repo.Create(ctx, est))
	require.NotZero(t, est.ID)

	got, err := repo.GetByID(ctx, est.ID)
	require.NoError(t, err)

	assert.Equal(t, est.Reference, got.Reference)
	assert.Equal(t, domain.EstimateDraft, got.Status)
	assert.Equal(t, 6, got.Group.TotalPax)
	require.Len(t, got.Hotels, 1)
	assert.Equal(t, 120.0, got.Hotels[0].PricePerRoom)
	require.Len(t, got.OptionalServices, 1)
	assert.Equal(t, 30.0, got.OptionalServices[0].Price)

	byRef, err := repo.GetByReference(ctx, est.Reference)
	require.NoError(t, err)
	assert.Equal(t, est.ID, byRef.ID)
}

func TestCreateDuplicateReference(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewEstimateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleEstimate()))

	err := repo.Create(ctx, sampleEstimate())
	assert.ErrorIs(t, err, ErrDuplicateReference)
}

func TestDecodeServicesLegacyStrings(t *testing.T) {
	services, err := decodeServices(`[
		{"name": "Insurance", "price": "30", "markup_percent": "5"},
		{"name": "Late checkout", "cost": 25, "calculation_type": "per_group"},
		{"name": "Broken record", "price": "not a number"}
	]`)
	require.NoError(t, err)
	require.Len(t, services, 3)

	assert.Equal(t, 30.0, services[0].Price)
	assert.Equal(t, 5.0, services[0].MarkupPercent)

	assert.Equal(t, 25.0, services[1].EffectivePrice())
	assert.Equal(t, domain.CalcPerGroup, services[1].CalculationType)

	assert.Equal(t, 0.0, services[2].Price)
}

func TestSaveTotalsMarksPriced(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewEstimateRepository(db)
	ctx := context.Background()

	est := sampleEstimate()
	require.NoError(t, repo.Create(ctx, est))

	totals := domain.EstimateTotals{
		Currency:             "USD",
		GeneralMarkupPercent: 8,
		WithoutMarkup:        domain.ModeTotals{BaseTotal: 420, GeneralMarkupAmount: 33.60, FinalTotal: 453.60},
		WithMarkup:           domain.ModeTotals{BaseTotal: 444, GeneralMarkupAmount: 35.52, FinalTotal: 479.52},
		DisplayMode:          "with_markup",
		DisplayTotal:         479.52,
	}
	require.NoError(t, repo.SaveTotals(ctx, est.ID, totals))

	got, err := repo.GetByID(ctx, est.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EstimatePriced, got.Status)
	assert.NotNil(t, got.PricedAt)
}

func TestListByUserScopesAndPaginates(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewEstimateRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		e := sampleEstimate()
		e.Reference = e.Reference[:len(e.Reference)-1] + string(rune('A'+i))
		require.NoError(t, repo.Create(ctx, e))
	}
	other := sampleEstimate()
	other.Reference = "EST-OTHER001"
	other.CreatedBy = 2
	require.NoError(t, repo.Create(ctx, other))

	estimates, total, err := repo.ListByUser(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, estimates, 2)

	estimates, _, err = repo.ListByUser(ctx, 2, 10, 0)
	require.NoError(t, err)
	assert.Len(t, estimates, 1)
}

func TestDeleteMissingEstimate(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewEstimateRepository(db)

	err := repo.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, ErrEstimateNotFound)
}

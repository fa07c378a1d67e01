package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAdjustments_GroupTierBestMatchOnly(t *testing.T) {
	settings := DefaultAdjustmentSettings()

	discountFor := func(pax int) float64 {
		r, err := ApplyAdjustments(1000, AdjustmentContext{TotalPax: pax}, settings)
		require.NoError(t, err)
		return r.TotalDiscount
	}

	// same tier, same discount
	assert.Equal(t, discountFor(20), discountFor(29))
	// higher tier never discounts less
	assert.GreaterOrEqual(t, discountFor(30), discountFor(20))

	// a qualifying 30-pax group gets exactly the 8% tier, not 3+5+8
	r, err := ApplyAdjustments(1000, AdjustmentContext{TotalPax: 30}, settings)
	require.NoError(t, err)
	require.Len(t, r.Discounts, 1)
	assert.Equal(t, 8.0, r.Discounts[0].Percent)
	assert.Equal(t, 80.00, r.TotalDiscount)
}

func TestApplyAdjustments_LoyaltyIsAdditive(t *testing.T) {
	settings := DefaultAdjustmentSettings()

	r, err := ApplyAdjustments(1000, AdjustmentContext{
		TotalPax:     5,
		RepeatClient: true,
		VIPClient:    true,
	}, settings)
	require.NoError(t, err)

	require.Len(t, r.Discounts, 2)
	assert.Equal(t, 70.00, r.TotalDiscount) // 2% + 5%
	assert.Equal(t, 930.00, r.FinalCost)
}

func TestApplyAdjustments_SeasonalIsDiscountOrSurchargeNeverBoth(t *testing.T) {
	settings := DefaultAdjustmentSettings()

	low, err := ApplyAdjustments(1000, AdjustmentContext{TotalPax: 2, Season: "low"}, settings)
	require.NoError(t, err)
	assert.Equal(t, 100.00, low.TotalDiscount)
	assert.Zero(t, low.TotalSurcharge)

	peak, err := ApplyAdjustments(1000, AdjustmentContext{TotalPax: 2, Season: "peak"}, settings)
	require.NoError(t, err)
	assert.Zero(t, peak.TotalDiscount)
	assert.Equal(t, 150.00, peak.TotalSurcharge)
}

func TestApplyAdjustments_SinglePassOverOriginalCost(t *testing.T) {
	settings := DefaultAdjustmentSettings()

	r, err := ApplyAdjustments(2000, AdjustmentContext{
		TotalPax:        25,
		RepeatClient:    true,
		Season:          "high",
		Urgency:         "same_week",
		SpecialServices: []string{"private_guide", "late_checkout", "unconfigured_extra"},
	}, settings)
	require.NoError(t, err)

	// discounts: 5% group + 2% repeat = 140; surcharges: 8% + 6% + 5% + 2% = 420
	assert.Equal(t, 140.00, r.TotalDiscount)
	assert.Equal(t, 420.00, r.TotalSurcharge)
	assert.Equal(t, 2280.00, r.FinalCost)

	// every matched rule carries its own amount against the original cost
	for _, line := range append(r.Discounts, r.Surcharges...) {
		assert.Equal(t, round2(2000*line.Percent/100), line.Amount, line.Description)
	}
}

func TestApplyAdjustments_Validation(t *testing.T) {
	settings := DefaultAdjustmentSettings()

	_, err := ApplyAdjustments(-1, AdjustmentContext{TotalPax: 5}, settings)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ApplyAdjustments(100, AdjustmentContext{TotalPax: 0}, settings)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdjustmentSettings_Validate(t *testing.T) {
	settings := DefaultAdjustmentSettings()
	warnings, err := settings.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	bad := DefaultAdjustmentSettings()
	bad.GroupTiers = []GroupTier{{MinPax: 10, Percent: 150}}
	_, err = bad.Validate()
	assert.ErrorIs(t, err, ErrValidation)

	negative := DefaultAdjustmentSettings()
	negative.UrgencySurcharges["same_day"] = -5
	_, err = negative.Validate()
	assert.ErrorIs(t, err, ErrValidation)

	conflicted := DefaultAdjustmentSettings()
	conflicted.SeasonSurcharges["low"] = 3
	_, err = conflicted.Validate()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdjustmentSettings_Validate_WarnsOnEmptyCategories(t *testing.T) {
	warnings, err := AdjustmentSettings{}.Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
}

func TestApplyAdjustments_Deterministic(t *testing.T) {
	settings := DefaultAdjustmentSettings()
	ctx := AdjustmentContext{
		TotalPax:        12,
		VIPClient:       true,
		Season:          "shoulder",
		SpecialServices: []string{"photography", "private_guide"},
	}

	first, err := ApplyAdjustments(1234.56, ctx, settings)
	require.NoError(t, err)
	second, err := ApplyAdjustments(1234.56, ctx, settings)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

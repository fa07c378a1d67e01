package pricing

import (
	"testing"

	"tourquote/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateLine_PerPerson(t *testing.T) {
	r, err := CalculateLine(LineInput{
		CalculationType: domain.CalcPerPerson,
		BasePrice:       44,
		MarkupPercent:   10,
	}, 5)
	require.NoError(t, err)

	assert.Equal(t, 220.00, r.Subtotal)
	assert.Equal(t, 22.00, r.MarkupAmount)
	assert.Equal(t, 242.00, r.Total)
}

func TestCalculateLine_PerGroupQuantityDefaultsToOne(t *testing.T) {
	r, err := CalculateLine(LineInput{
		CalculationType: domain.CalcPerGroup,
		BasePrice:       500,
	}, 12)
	require.NoError(t, err)
	assert.Equal(t, 500.00, r.Subtotal)

	// group size is irrelevant for per_group lines
	r2, err := CalculateLine(LineInput{
		CalculationType: domain.CalcPerGroup,
		BasePrice:       500,
	}, 40)
	require.NoError(t, err)
	assert.Equal(t, r.Subtotal, r2.Subtotal)
}

func TestCalculateLine_PerUnitAndPerDay(t *testing.T) {
	r, err := CalculateLine(LineInput{
		CalculationType: domain.CalcPerUnit,
		BasePrice:       30,
		Quantity:        4,
		MarkupPercent:   5,
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, 120.00, r.Subtotal)
	assert.Equal(t, 6.00, r.MarkupAmount)
	assert.Equal(t, 126.00, r.Total)

	r, err = CalculateLine(LineInput{
		CalculationType: domain.CalcPerDay,
		BasePrice:       180,
		Quantity:        7,
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1260.00, r.Subtotal)
	assert.Equal(t, 1260.00, r.Total)
}

func TestCalculateLine_ValidationFailures(t *testing.T) {
	cases := []struct {
		name         string
		in           LineInput
		participants int
	}{
		{"negative price", LineInput{CalculationType: domain.CalcPerPerson, BasePrice: -1}, 5},
		{"negative participants", LineInput{CalculationType: domain.CalcPerPerson, BasePrice: 10}, -1},
		{"zero participants per_person", LineInput{CalculationType: domain.CalcPerPerson, BasePrice: 10}, 0},
		{"zero quantity per_unit", LineInput{CalculationType: domain.CalcPerUnit, BasePrice: 10}, 5},
		{"zero quantity per_day", LineInput{CalculationType: domain.CalcPerDay, BasePrice: 10}, 5},
		{"negative quantity", LineInput{CalculationType: domain.CalcPerGroup, BasePrice: 10, Quantity: -2}, 5},
		{"unknown type", LineInput{CalculationType: "per_mile", BasePrice: 10}, 5},
		{"markup above 100", LineInput{CalculationType: domain.CalcPerPerson, BasePrice: 10, MarkupPercent: 101}, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := CalculateLine(c.in, c.participants)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCheckLine_InvariantHolds(t *testing.T) {
	r, err := CalculateLine(LineInput{
		CalculationType: domain.CalcPerPerson,
		BasePrice:       33.33,
		MarkupPercent:   17,
	}, 7)
	require.NoError(t, err)
	assert.NoError(t, CheckLine(r))
	assert.Equal(t, r.Total, round2(r.Subtotal+r.MarkupAmount))
}

func TestCheckLine_DetectsInconsistency(t *testing.T) {
	bad := domain.CalculationResult{
		Subtotal:     100,
		MarkupAmount: 10,
		Total:        115, // off by 5, far outside tolerance
	}
	err := CheckLine(bad)
	require.Error(t, err)

	var ie *IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 110.00, ie.Expected)
	assert.Equal(t, 115.00, ie.Actual)
}

func TestCheckTotals_Tolerance(t *testing.T) {
	assert.NoError(t, CheckTotals(100, 10, 110))
	assert.NoError(t, CheckTotals(100, 10, 110.01))
	assert.Error(t, CheckTotals(100, 10, 110.02))
}

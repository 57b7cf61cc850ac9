package finance

import (
	"testing"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func methodPtr(m CalculationMethod) *CalculationMethod {
	return &m
}

func ratePtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestCalculationMethod_IsValid(t *testing.T) {
	tests := []struct {
		method  CalculationMethod
		isValid bool
	}{
		{CalculationMethodPercentage, true},
		{CalculationMethodFixedAmount, true},
		{CalculationMethod("BOGOF"), false},
		{CalculationMethod(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.method.IsValid())
		})
	}
}

func TestValidateMethod(t *testing.T) {
	assert.NoError(t, ValidateMethod(nil))
	assert.NoError(t, ValidateMethod(methodPtr(CalculationMethodPercentage)))
	assert.NoError(t, ValidateMethod(methodPtr(CalculationMethodFixedAmount)))

	err := ValidateMethod(methodPtr(CalculationMethod("BOGOF")))
	assert.ErrorIs(t, err, shared.ErrInvalidCalculationInput)
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name     string
		subTotal float64
		method   *CalculationMethod
		rate     *decimal.Decimal
		want     float64
	}{
		{"percentage of sub-total", 200, methodPtr(CalculationMethodPercentage), ratePtr(10), 20},
		{"full percentage", 300, methodPtr(CalculationMethodPercentage), ratePtr(100), 300},
		{"fixed amount taken verbatim", 200, methodPtr(CalculationMethodFixedAmount), ratePtr(35), 35},
		{"fixed amount may exceed sub-total", 100, methodPtr(CalculationMethodFixedAmount), ratePtr(150), 150},
		{"negative percentage floored at zero", 200, methodPtr(CalculationMethodPercentage), ratePtr(-10), 0},
		{"zero sub-total", 0, methodPtr(CalculationMethodPercentage), ratePtr(10), 0},
		{"negative sub-total", -50, methodPtr(CalculationMethodFixedAmount), ratePtr(10), 0},
		{"nil method", 200, nil, ratePtr(10), 0},
		{"nil rate", 200, methodPtr(CalculationMethodPercentage), nil, 0},
		{"unknown method falls through to zero", 200, methodPtr(CalculationMethod("BOGOF")), ratePtr(10), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(decimal.NewFromFloat(tt.subTotal), tt.method, tt.rate)
			assert.True(t, decimal.NewFromFloat(tt.want).Equal(got), "want %v got %s", tt.want, got)
		})
	}
}

func TestCharge(t *testing.T) {
	tests := []struct {
		name     string
		subTotal float64
		discount float64
		method   *CalculationMethod
		rate     *decimal.Decimal
		want     float64
	}{
		{"percentage applies to net of discount", 200, 50, methodPtr(CalculationMethodPercentage), ratePtr(10), 15},
		{"fixed amount taken verbatim", 200, 50, methodPtr(CalculationMethodFixedAmount), ratePtr(12), 12},
		{"zero sub-total", 0, 0, methodPtr(CalculationMethodPercentage), ratePtr(10), 0},
		{"nil method", 200, 0, nil, ratePtr(10), 0},
		{"nil rate", 200, 0, methodPtr(CalculationMethodPercentage), nil, 0},
		{"unknown method falls through to zero", 200, 0, methodPtr(CalculationMethod("FLAT")), ratePtr(10), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Charge(decimal.NewFromFloat(tt.subTotal), decimal.NewFromFloat(tt.discount), tt.method, tt.rate)
			assert.True(t, decimal.NewFromFloat(tt.want).Equal(got), "want %v got %s", tt.want, got)
		})
	}
}

func TestComputeDocument(t *testing.T) {
	t.Run("discount then charge then total", func(t *testing.T) {
		amounts := ComputeDocument(
			decimal.NewFromInt(1000),
			methodPtr(CalculationMethodPercentage), ratePtr(10),
			methodPtr(CalculationMethodPercentage), ratePtr(5),
		)

		assert.True(t, decimal.NewFromInt(1000).Equal(amounts.SubTotal))
		assert.True(t, decimal.NewFromInt(100).Equal(amounts.Discount))
		assert.True(t, decimal.NewFromInt(45).Equal(amounts.Charge), "5%% of 900, got %s", amounts.Charge)
		assert.True(t, decimal.NewFromInt(945).Equal(amounts.Total))
	})

	t.Run("total floored at zero when discount exceeds sub-total", func(t *testing.T) {
		amounts := ComputeDocument(
			decimal.NewFromInt(100),
			methodPtr(CalculationMethodFixedAmount), ratePtr(250),
			nil, nil,
		)

		assert.True(t, decimal.NewFromInt(250).Equal(amounts.Discount))
		assert.True(t, amounts.Total.IsZero(), "total must not go negative, got %s", amounts.Total)
	})

	t.Run("no inputs means no derived amounts", func(t *testing.T) {
		amounts := ComputeDocument(decimal.NewFromInt(500), nil, nil, nil, nil)

		assert.True(t, amounts.Discount.IsZero())
		assert.True(t, amounts.Charge.IsZero())
		assert.True(t, decimal.NewFromInt(500).Equal(amounts.Total))
	})

	t.Run("zero sub-total yields all zeros", func(t *testing.T) {
		amounts := ComputeDocument(
			decimal.Zero,
			methodPtr(CalculationMethodPercentage), ratePtr(10),
			methodPtr(CalculationMethodFixedAmount), ratePtr(5),
		)

		assert.True(t, amounts.Discount.IsZero())
		assert.True(t, amounts.Charge.IsZero())
		assert.True(t, amounts.Total.IsZero())
	})
}

func TestComputeLine(t *testing.T) {
	amounts := ComputeLine(
		decimal.NewFromInt(3), decimal.NewFromInt(100),
		methodPtr(CalculationMethodPercentage), ratePtr(10),
		nil, nil,
	)

	assert.True(t, decimal.NewFromInt(300).Equal(amounts.SubTotal))
	assert.True(t, decimal.NewFromInt(30).Equal(amounts.Discount))
	assert.True(t, decimal.NewFromInt(270).Equal(amounts.Total))
}

func TestComputeTaxedLine(t *testing.T) {
	t.Run("tax added after discount", func(t *testing.T) {
		amounts := ComputeTaxedLine(
			decimal.NewFromInt(2), decimal.NewFromInt(50),
			methodPtr(CalculationMethodFixedAmount), ratePtr(20),
			decimal.NewFromInt(8),
		)

		assert.True(t, decimal.NewFromInt(100).Equal(amounts.SubTotal))
		assert.True(t, decimal.NewFromInt(20).Equal(amounts.Discount))
		assert.True(t, decimal.NewFromInt(8).Equal(amounts.Charge))
		assert.True(t, decimal.NewFromInt(88).Equal(amounts.Total))
	})

	t.Run("floored at zero", func(t *testing.T) {
		amounts := ComputeTaxedLine(
			decimal.NewFromInt(1), decimal.NewFromInt(10),
			methodPtr(CalculationMethodFixedAmount), ratePtr(50),
			decimal.NewFromInt(2),
		)

		assert.True(t, amounts.Total.IsZero())
	})

	t.Run("percentage rate within bounds never drives total negative", func(t *testing.T) {
		for _, rate := range []float64{0, 25, 50, 99.5, 100} {
			amounts := ComputeTaxedLine(
				decimal.NewFromInt(4), decimal.NewFromFloat(12.5),
				methodPtr(CalculationMethodPercentage), ratePtr(rate),
				decimal.Zero,
			)
			assert.False(t, amounts.Total.IsNegative(), "rate %v produced %s", rate, amounts.Total)
		}
	})
}

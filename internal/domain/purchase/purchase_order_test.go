package purchase

import (
	"testing"
	"time"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *PurchaseOrder {
	order, err := NewPurchaseOrder(shared.NewDocumentScope(uuid.New()), uuid.New(), time.Now())
	require.NoError(t, err)
	return order
}

func createTestLine(t *testing.T, orderID uuid.UUID, quantity, cost float64) *PurchaseOrderLine {
	line, err := NewPurchaseOrderLine(orderID, uuid.New(), "Test Product", decimal.NewFromFloat(quantity), decimal.NewFromFloat(cost))
	require.NoError(t, err)
	return line
}

func discountMethodPtr(m finance.CalculationMethod) *finance.CalculationMethod {
	return &m
}

func decimalPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestReceivedStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  ReceivedStatus
		isValid bool
	}{
		{ReceivedStatusNotReceived, true},
		{ReceivedStatusPartiallyReceived, true},
		{ReceivedStatusFullyReceived, true},
		{ReceivedStatus("RECEIVED"), false},
		{ReceivedStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("creates draft order with zeroed financials", func(t *testing.T) {
		order := createTestOrder(t)

		assert.NotEqual(t, uuid.Nil, order.ID)
		assert.Equal(t, ReceivedStatusNotReceived, order.ReceivedStatus)
		assert.True(t, order.SubTotal.IsZero())
		assert.True(t, order.Total.IsZero())
	})

	t.Run("rejects empty organization", func(t *testing.T) {
		_, err := NewPurchaseOrder(shared.DocumentScope{}, uuid.New(), time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects empty supplier", func(t *testing.T) {
		_, err := NewPurchaseOrder(shared.NewDocumentScope(uuid.New()), uuid.Nil, time.Now())
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_DocumentNumber(t *testing.T) {
	order := createTestOrder(t)
	order.AssignNumber(7, "PO-")

	assert.Equal(t, int64(7), order.Number)
	assert.Equal(t, "PO-00007", order.DocumentNumber())
}

func TestPurchaseOrder_ApplyFinancials(t *testing.T) {
	t.Run("derives header amounts from aggregated sub-total", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.SetDiscount(discountMethodPtr(finance.CalculationMethodPercentage), decimalPtr(10)))
		require.NoError(t, order.SetCharge(discountMethodPtr(finance.CalculationMethodFixedAmount), decimalPtr(25)))

		order.ApplyFinancials(decimal.NewFromInt(1000))

		assert.True(t, decimal.NewFromInt(1000).Equal(order.SubTotal))
		assert.True(t, decimal.NewFromInt(100).Equal(order.Discount))
		assert.True(t, decimal.NewFromInt(25).Equal(order.Charge))
		assert.True(t, decimal.NewFromInt(925).Equal(order.Total))
	})

	t.Run("recomputing twice is idempotent", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.SetDiscount(discountMethodPtr(finance.CalculationMethodPercentage), decimalPtr(10)))

		order.ApplyFinancials(decimal.NewFromInt(300))
		first := order.Total
		order.ApplyFinancials(decimal.NewFromInt(300))

		assert.True(t, first.Equal(order.Total))
	})

	t.Run("rejects unknown method at the boundary", func(t *testing.T) {
		order := createTestOrder(t)
		bogus := finance.CalculationMethod("BOGOF")
		err := order.SetDiscount(&bogus, decimalPtr(10))
		assert.ErrorIs(t, err, shared.ErrInvalidCalculationInput)
	})
}

func TestPurchaseOrder_RefreshReceivedStatus(t *testing.T) {
	newLine := func(quantity, received float64) PurchaseOrderLine {
		line := createTestLine(t, uuid.New(), quantity, 10)
		line.ReceivedQuantity = decimal.NewFromFloat(received)
		return *line
	}

	tests := []struct {
		name  string
		lines []PurchaseOrderLine
		want  ReceivedStatus
	}{
		{"nothing received", []PurchaseOrderLine{newLine(10, 0), newLine(5, 0)}, ReceivedStatusNotReceived},
		{"partially received", []PurchaseOrderLine{newLine(10, 7), newLine(5, 0)}, ReceivedStatusPartiallyReceived},
		{"fully received", []PurchaseOrderLine{newLine(10, 10), newLine(5, 5)}, ReceivedStatusFullyReceived},
		{"no lines", nil, ReceivedStatusNotReceived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := createTestOrder(t)
			order.RefreshReceivedStatus(tt.lines)
			assert.Equal(t, tt.want, order.ReceivedStatus)
		})
	}
}

func TestNewPurchaseOrderLine(t *testing.T) {
	t.Run("derives financials on creation", func(t *testing.T) {
		line := createTestLine(t, uuid.New(), 3, 100)

		assert.True(t, decimal.NewFromInt(300).Equal(line.SubTotal))
		assert.True(t, line.Discount.IsZero())
		assert.True(t, decimal.NewFromInt(300).Equal(line.Total))
		assert.True(t, line.PendingQuantity().Equal(decimal.NewFromInt(3)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewPurchaseOrderLine(uuid.New(), uuid.New(), "x", decimal.Zero, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		_, err := NewPurchaseOrderLine(uuid.New(), uuid.New(), "x", decimal.NewFromInt(1), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestPurchaseOrderLine_Recalculate(t *testing.T) {
	line := createTestLine(t, uuid.New(), 2, 50)
	require.NoError(t, line.SetDiscount(discountMethodPtr(finance.CalculationMethodPercentage), decimalPtr(10)))

	assert.True(t, decimal.NewFromInt(100).Equal(line.SubTotal))
	assert.True(t, decimal.NewFromInt(10).Equal(line.Discount))
	assert.True(t, decimal.NewFromInt(90).Equal(line.Total))

	line.Quantity = decimal.NewFromInt(5)
	line.Recalculate()

	assert.True(t, decimal.NewFromInt(250).Equal(line.SubTotal))
	assert.True(t, decimal.NewFromInt(25).Equal(line.Discount))
	assert.True(t, decimal.NewFromInt(225).Equal(line.Total))
}

func TestPurchaseOrderLine_SameFinancialInputs(t *testing.T) {
	base := func() *PurchaseOrderLine {
		line := createTestLine(t, uuid.New(), 2, 50)
		require.NoError(t, line.SetDiscount(discountMethodPtr(finance.CalculationMethodPercentage), decimalPtr(10)))
		return line
	}

	t.Run("equal inputs", func(t *testing.T) {
		a, b := base(), base()
		assert.True(t, a.SameFinancialInputs(b))
	})

	t.Run("cost changed", func(t *testing.T) {
		a, b := base(), base()
		b.Cost = decimal.NewFromInt(60)
		assert.False(t, a.SameFinancialInputs(b))
	})

	t.Run("quantity changed", func(t *testing.T) {
		a, b := base(), base()
		b.Quantity = decimal.NewFromInt(3)
		assert.False(t, a.SameFinancialInputs(b))
	})

	t.Run("discount method cleared", func(t *testing.T) {
		a, b := base(), base()
		b.DiscountMethod = nil
		assert.False(t, a.SameFinancialInputs(b))
	})

	t.Run("discount rate changed", func(t *testing.T) {
		a, b := base(), base()
		b.DiscountRate = decimalPtr(15)
		assert.False(t, a.SameFinancialInputs(b))
	})
}

func TestPurchaseOrderLine_RebuildTaxes(t *testing.T) {
	line := createTestLine(t, uuid.New(), 2, 100)
	require.NoError(t, line.SetDiscount(discountMethodPtr(finance.CalculationMethodFixedAmount), decimalPtr(50)))

	rates := []TaxRate{
		{ID: uuid.New(), Name: "VAT", Rate: decimal.NewFromInt(10)},
		{ID: uuid.New(), Name: "Levy", Rate: decimal.NewFromInt(5)},
	}
	taxes := line.RebuildTaxes(rates)

	require.Len(t, taxes, 2)
	// Taxable amount is 200 - 50 = 150.
	assert.True(t, decimal.NewFromInt(15).Equal(taxes[0].Amount))
	assert.True(t, decimal.NewFromFloat(7.5).Equal(taxes[1].Amount))
	assert.True(t, decimal.NewFromFloat(22.5).Equal(line.TaxAmount))
	// Tax flows into the line total.
	assert.True(t, decimal.NewFromFloat(172.5).Equal(line.Total))
}

func TestNewRequisitionLine(t *testing.T) {
	line, err := NewRequisitionLine(uuid.New(), uuid.New(), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, line.PurchasedQuantity.IsZero())

	line.SetPurchasedQuantity(decimal.NewFromInt(4))
	assert.True(t, decimal.NewFromInt(4).Equal(line.PurchasedQuantity))

	_, err = NewRequisitionLine(uuid.Nil, uuid.New(), decimal.NewFromInt(1))
	assert.Error(t, err)
}

package finance

import (
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CalculationMethod determines how a discount or additional-charge rate is
// interpreted: as a percentage of the base amount or as an absolute amount.
type CalculationMethod string

const (
	CalculationMethodPercentage  CalculationMethod = "PERCENTAGE"
	CalculationMethodFixedAmount CalculationMethod = "FIXED_AMOUNT"
)

// IsValid checks if the method is a known CalculationMethod
func (m CalculationMethod) IsValid() bool {
	switch m {
	case CalculationMethodPercentage, CalculationMethodFixedAmount:
		return true
	}
	return false
}

// String returns the string representation of CalculationMethod
func (m CalculationMethod) String() string {
	return string(m)
}

// ValidateMethod rejects methods that are set but not recognized. Unset (nil)
// is valid and contributes zero. This runs at the input boundary only; the
// Compute functions below never fail and treat unknown methods as zero.
func ValidateMethod(method *CalculationMethod) error {
	if method == nil {
		return nil
	}
	if !method.IsValid() {
		return shared.ErrInvalidCalculationInput
	}
	return nil
}

var oneHundred = decimal.NewFromInt(100)

// Amounts holds the derived financial fields of a document or line.
// These values are never independent truth: they are recomputed from their
// inputs whenever an input changes, and persisted only as a synchronized copy.
type Amounts struct {
	SubTotal decimal.Decimal
	Discount decimal.Decimal
	Charge   decimal.Decimal
	Total    decimal.Decimal
}

// Discount derives the discount amount from a sub-total and a method/rate
// pair. All of the following yield zero: non-positive sub-total, unset method,
// unset rate, unknown method. A percentage discount is floored at zero so a
// negative rate cannot turn into a surcharge; a fixed amount is taken
// verbatim.
func Discount(subTotal decimal.Decimal, method *CalculationMethod, rate *decimal.Decimal) decimal.Decimal {
	if !subTotal.IsPositive() || method == nil || rate == nil {
		return decimal.Zero
	}
	switch *method {
	case CalculationMethodPercentage:
		return decimal.Max(decimal.Zero, subTotal.Mul(*rate).Div(oneHundred))
	case CalculationMethodFixedAmount:
		return *rate
	}
	return decimal.Zero
}

// Charge derives the additional charge (or tax) amount. The percentage base
// is the sub-total net of discount; the guard condition is still the gross
// sub-total, matching the discount guard.
func Charge(subTotal, discount decimal.Decimal, method *CalculationMethod, rate *decimal.Decimal) decimal.Decimal {
	if !subTotal.IsPositive() || method == nil || rate == nil {
		return decimal.Zero
	}
	switch *method {
	case CalculationMethodPercentage:
		return decimal.Max(decimal.Zero, subTotal.Sub(discount).Mul(*rate).Div(oneHundred))
	case CalculationMethodFixedAmount:
		return *rate
	}
	return decimal.Zero
}

// ComputeDocument derives the financial fields of a document header. The
// sub-total is an externally maintained aggregate (the sum of the lines'
// sub-totals), not a function of the header's own inputs. The total is
// floored at zero: a discount larger than the sub-total cannot drive the
// total negative.
func ComputeDocument(subTotal decimal.Decimal, discountMethod *CalculationMethod, discountRate *decimal.Decimal, chargeMethod *CalculationMethod, chargeRate *decimal.Decimal) Amounts {
	discount := Discount(subTotal, discountMethod, discountRate)
	charge := Charge(subTotal, discount, chargeMethod, chargeRate)
	return Amounts{
		SubTotal: subTotal,
		Discount: discount,
		Charge:   charge,
		Total:    decimal.Max(decimal.Zero, subTotal.Sub(discount).Add(charge)),
	}
}

// ComputeLine derives the financial fields of a line item from its stored
// inputs: sub-total = quantity x unit price, then discount and charge exactly
// as for a document.
func ComputeLine(quantity, unitPrice decimal.Decimal, discountMethod *CalculationMethod, discountRate *decimal.Decimal, chargeMethod *CalculationMethod, chargeRate *decimal.Decimal) Amounts {
	return ComputeDocument(quantity.Mul(unitPrice), discountMethod, discountRate, chargeMethod, chargeRate)
}

// ComputeTaxedLine derives the financial fields of a line item that carries an
// externally computed tax amount instead of a method/rate charge. The tax is
// added to (sub-total - discount) before the zero floor.
func ComputeTaxedLine(quantity, unitPrice decimal.Decimal, discountMethod *CalculationMethod, discountRate *decimal.Decimal, tax decimal.Decimal) Amounts {
	subTotal := quantity.Mul(unitPrice)
	discount := Discount(subTotal, discountMethod, discountRate)
	return Amounts{
		SubTotal: subTotal,
		Discount: discount,
		Charge:   tax,
		Total:    decimal.Max(decimal.Zero, subTotal.Sub(discount).Add(tax)),
	}
}

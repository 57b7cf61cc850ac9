package purchase

import (
	"time"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/numbering"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceivedStatus represents how much of a purchase order has been received
type ReceivedStatus string

const (
	ReceivedStatusNotReceived       ReceivedStatus = "NOT_RECEIVED"
	ReceivedStatusPartiallyReceived ReceivedStatus = "PARTIALLY_RECEIVED"
	ReceivedStatusFullyReceived     ReceivedStatus = "FULLY_RECEIVED"
)

// IsValid checks if the status is a valid ReceivedStatus
func (s ReceivedStatus) IsValid() bool {
	switch s {
	case ReceivedStatusNotReceived, ReceivedStatusPartiallyReceived, ReceivedStatusFullyReceived:
		return true
	}
	return false
}

// String returns the string representation of ReceivedStatus
func (s ReceivedStatus) String() string {
	return string(s)
}

// PurchaseOrder is the financial-document header for purchased goods. Its
// SubTotal is the sum of its lines' sub-totals, maintained by the line
// cascade; Discount, Charge and Total are derived from the header's own
// method/rate over that aggregate. TaxTotal is the sum of the lines' tax
// amounts.
type PurchaseOrder struct {
	shared.BaseEntity
	shared.DocumentScope
	Number         int64                      `gorm:"not null;uniqueIndex:ux_purchase_orders_scope_number"`
	NumberPrefix   string                     `gorm:"type:varchar(20);not null;default:''"`
	SupplierID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Date           time.Time                  `gorm:"not null"`
	DiscountMethod *finance.CalculationMethod `gorm:"type:varchar(20)"`
	DiscountRate   *decimal.Decimal           `gorm:"type:decimal(18,4)"`
	ChargeMethod   *finance.CalculationMethod `gorm:"type:varchar(20)"`
	ChargeRate     *decimal.Decimal           `gorm:"type:decimal(18,4)"`
	SubTotal       decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Discount       decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Charge         decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Total          decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	TaxTotal       decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	ReceivedStatus ReceivedStatus             `gorm:"type:varchar(30);not null"`
	Lines          []PurchaseOrderLine        `gorm:"foreignKey:OrderID"`
	DeletedAt      gorm.DeletedAt             `gorm:"index"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new draft purchase order. The document number is
// assigned separately by the sequencer before the first save.
func NewPurchaseOrder(scope shared.DocumentScope, supplierID uuid.UUID, date time.Time) (*PurchaseOrder, error) {
	if scope.OrganizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	return &PurchaseOrder{
		BaseEntity:     shared.NewBaseEntity(),
		DocumentScope:  scope,
		SupplierID:     supplierID,
		Date:           date,
		SubTotal:       decimal.Zero,
		Discount:       decimal.Zero,
		Charge:         decimal.Zero,
		Total:          decimal.Zero,
		TaxTotal:       decimal.Zero,
		ReceivedStatus: ReceivedStatusNotReceived,
	}, nil
}

// AssignNumber sets the sequenced number and resolved prefix
func (po *PurchaseOrder) AssignNumber(number int64, prefix string) {
	po.Number = number
	po.NumberPrefix = prefix
}

// DocumentNumber renders the human-facing number (prefix + zero-padded value)
func (po *PurchaseOrder) DocumentNumber() string {
	return numbering.FormatNumber(po.NumberPrefix, po.Number)
}

// SetDiscount sets the header discount method and rate
func (po *PurchaseOrder) SetDiscount(method *finance.CalculationMethod, rate *decimal.Decimal) error {
	if err := finance.ValidateMethod(method); err != nil {
		return err
	}
	po.DiscountMethod = method
	po.DiscountRate = rate
	po.ApplyFinancials(po.SubTotal)
	return nil
}

// SetCharge sets the header additional-charge method and rate
func (po *PurchaseOrder) SetCharge(method *finance.CalculationMethod, rate *decimal.Decimal) error {
	if err := finance.ValidateMethod(method); err != nil {
		return err
	}
	po.ChargeMethod = method
	po.ChargeRate = rate
	po.ApplyFinancials(po.SubTotal)
	return nil
}

// ApplyFinancials re-derives the header's financial fields from the given
// line sub-total aggregate and the header's own method/rate inputs. It is the
// only way the persisted derived columns change, so they can never go stale
// relative to their inputs.
func (po *PurchaseOrder) ApplyFinancials(lineSubTotal decimal.Decimal) {
	amounts := finance.ComputeDocument(lineSubTotal, po.DiscountMethod, po.DiscountRate, po.ChargeMethod, po.ChargeRate)
	po.SubTotal = amounts.SubTotal
	po.Discount = amounts.Discount
	po.Charge = amounts.Charge
	po.Total = amounts.Total
	po.UpdatedAt = time.Now()
}

// SetTaxTotal stores the recomputed sum of the lines' tax amounts
func (po *PurchaseOrder) SetTaxTotal(taxTotal decimal.Decimal) {
	po.TaxTotal = taxTotal
	po.UpdatedAt = time.Now()
}

// RefreshReceivedStatus re-derives the aggregate received status from the
// given committed lines: nothing received, something but not everything, or
// everything.
func (po *PurchaseOrder) RefreshReceivedStatus(lines []PurchaseOrderLine) {
	ordered := decimal.Zero
	received := decimal.Zero
	for _, line := range lines {
		ordered = ordered.Add(line.Quantity)
		received = received.Add(line.ReceivedQuantity)
	}

	switch {
	case received.IsZero():
		po.ReceivedStatus = ReceivedStatusNotReceived
	case received.LessThan(ordered):
		po.ReceivedStatus = ReceivedStatusPartiallyReceived
	default:
		po.ReceivedStatus = ReceivedStatusFullyReceived
	}
	po.UpdatedAt = time.Now()
}

// PurchaseOrderLine is a line item of a purchase order. SubTotal, Discount
// and Total are derived from the stored inputs via Recalculate; ReceivedQuantity
// is the running aggregate consumed by receiving notes.
type PurchaseOrderLine struct {
	shared.BaseEntity
	OrderID           uuid.UUID                  `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID                  `gorm:"type:uuid;not null"`
	ProductName       string                     `gorm:"type:varchar(200);not null"`
	Quantity          decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Cost              decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	DiscountMethod    *finance.CalculationMethod `gorm:"type:varchar(20)"`
	DiscountRate      *decimal.Decimal           `gorm:"type:decimal(18,4)"`
	TaxAmount         decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	SubTotal          decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Discount          decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Total             decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity  decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	RequisitionLineID *uuid.UUID                 `gorm:"type:uuid;index"`
	Taxes             []PurchaseOrderLineTax     `gorm:"foreignKey:LineID"`
	DeletedAt         gorm.DeletedAt             `gorm:"index"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// NewPurchaseOrderLine creates a line item with derived fields already
// computed from its inputs
func NewPurchaseOrderLine(orderID, productID uuid.UUID, productName string, quantity, cost decimal.Decimal) (*PurchaseOrderLine, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}

	line := &PurchaseOrderLine{
		BaseEntity:       shared.NewBaseEntity(),
		OrderID:          orderID,
		ProductID:        productID,
		ProductName:      productName,
		Quantity:         quantity,
		Cost:             cost,
		TaxAmount:        decimal.Zero,
		ReceivedQuantity: decimal.Zero,
	}
	line.Recalculate()
	return line, nil
}

// SetDiscount sets the line discount method and rate and re-derives
func (l *PurchaseOrderLine) SetDiscount(method *finance.CalculationMethod, rate *decimal.Decimal) error {
	if err := finance.ValidateMethod(method); err != nil {
		return err
	}
	l.DiscountMethod = method
	l.DiscountRate = rate
	l.Recalculate()
	return nil
}

// Recalculate re-derives SubTotal, Discount and Total from the line's stored
// inputs. Called after every input change, never skipped: the derived columns
// are a synchronized copy, not independent truth.
func (l *PurchaseOrderLine) Recalculate() {
	amounts := finance.ComputeTaxedLine(l.Quantity, l.Cost, l.DiscountMethod, l.DiscountRate, l.TaxAmount)
	l.SubTotal = amounts.SubTotal
	l.Discount = amounts.Discount
	l.Total = amounts.Total
	l.UpdatedAt = time.Now()
}

// PendingQuantity is the quantity still receivable against this line
func (l *PurchaseOrderLine) PendingQuantity() decimal.Decimal {
	return l.Quantity.Sub(l.ReceivedQuantity)
}

// AddReceivedQuantity bumps the running received aggregate
func (l *PurchaseOrderLine) AddReceivedQuantity(quantity decimal.Decimal) {
	l.ReceivedQuantity = l.ReceivedQuantity.Add(quantity)
	l.UpdatedAt = time.Now()
}

// SameFinancialInputs reports whether the cost, quantity and discount inputs
// of both lines match. The cascade uses this to decide whether the tax
// breakdown has to be rebuilt.
func (l *PurchaseOrderLine) SameFinancialInputs(other *PurchaseOrderLine) bool {
	if !l.Cost.Equal(other.Cost) || !l.Quantity.Equal(other.Quantity) {
		return false
	}
	if (l.DiscountMethod == nil) != (other.DiscountMethod == nil) {
		return false
	}
	if l.DiscountMethod != nil && *l.DiscountMethod != *other.DiscountMethod {
		return false
	}
	if (l.DiscountRate == nil) != (other.DiscountRate == nil) {
		return false
	}
	if l.DiscountRate != nil && !l.DiscountRate.Equal(*other.DiscountRate) {
		return false
	}
	return true
}

// RebuildTaxes recreates the tax breakdown rows from the line's current
// taxable amount (sub-total net of discount) and the given rates, and stores
// the new tax amount sum on the line.
func (l *PurchaseOrderLine) RebuildTaxes(rates []TaxRate) []PurchaseOrderLineTax {
	taxable := l.SubTotal.Sub(l.Discount)
	taxes := make([]PurchaseOrderLineTax, 0, len(rates))
	taxSum := decimal.Zero
	for _, rate := range rates {
		tax := NewPurchaseOrderLineTax(l.ID, rate, taxable)
		taxSum = taxSum.Add(tax.Amount)
		taxes = append(taxes, *tax)
	}
	l.TaxAmount = taxSum
	l.Taxes = taxes
	l.Recalculate()
	return taxes
}

// TaxRate is a named percentage applied to a line's taxable amount
type TaxRate struct {
	ID   uuid.UUID
	Name string
	Rate decimal.Decimal
}

// PurchaseOrderLineTax is one row of a line's tax breakdown. Rows are
// recreated wholesale whenever the line's financial inputs change.
type PurchaseOrderLineTax struct {
	shared.BaseEntity
	LineID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	TaxRateID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLineTax) TableName() string {
	return "purchase_order_line_taxes"
}

// NewPurchaseOrderLineTax computes one tax breakdown row for a taxable amount
func NewPurchaseOrderLineTax(lineID uuid.UUID, rate TaxRate, taxable decimal.Decimal) *PurchaseOrderLineTax {
	return &PurchaseOrderLineTax{
		BaseEntity: shared.NewBaseEntity(),
		LineID:     lineID,
		TaxRateID:  rate.ID,
		Name:       rate.Name,
		Rate:       rate.Rate,
		Amount:     decimal.Max(decimal.Zero, taxable).Mul(rate.Rate).Div(decimal.NewFromInt(100)),
	}
}

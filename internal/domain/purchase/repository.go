package purchase

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository defines the interface for purchase order persistence
type OrderRepository interface {
	// FindByID finds a purchase order by ID (lines preloaded)
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByIDForOrganization finds a purchase order by ID within an organization
	FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*PurchaseOrder, error)

	// Save creates or updates a purchase order header
	Save(ctx context.Context, order *PurchaseOrder) error

	// CurrentMaxNumber returns the highest document number in the scope,
	// counting soft-deleted orders, or 0 when the scope is empty
	CurrentMaxNumber(ctx context.Context, scope shared.DocumentScope) (int64, error)
}

// LineRepository defines the interface for purchase order line persistence
type LineRepository interface {
	// FindByID finds a line by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderLine, error)

	// FindByOrder returns the committed lines of an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]PurchaseOrderLine, error)

	// FindByIDsForUpdate loads lines by ID with row locks held until the
	// surrounding transaction ends
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]PurchaseOrderLine, error)

	// Save creates or updates a line
	Save(ctx context.Context, line *PurchaseOrderLine) error

	// Delete soft-deletes a line
	Delete(ctx context.Context, id uuid.UUID) error

	// SumSubTotals aggregates the sub-totals of an order's committed lines
	SumSubTotals(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)

	// SumTaxAmounts aggregates the tax amounts of an order's committed lines
	SumTaxAmounts(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)

	// SumQuantityByRequisitionLine aggregates the ordered quantity of the
	// committed lines referencing a requisition line
	SumQuantityByRequisitionLine(ctx context.Context, requisitionLineID uuid.UUID) (decimal.Decimal, error)

	// ReplaceTaxes deletes a line's tax breakdown rows and inserts new ones
	ReplaceTaxes(ctx context.Context, lineID uuid.UUID, taxes []PurchaseOrderLineTax) error
}

// RequisitionLineRepository defines the interface for requisition line persistence
type RequisitionLineRepository interface {
	// FindByID finds a requisition line by ID
	FindByID(ctx context.Context, id uuid.UUID) (*RequisitionLine, error)

	// Save creates or updates a requisition line
	Save(ctx context.Context, line *RequisitionLine) error
}

// CostPriceResolver is the supplier-pricing boundary: an external catalog
// lookup for the cost price a supplier has assigned to a product. A nil
// result with a nil error means no assigned price exists.
type CostPriceResolver interface {
	AssignedCostPrice(ctx context.Context, productID, supplierID uuid.UUID) (*decimal.Decimal, error)
}

// TaxRateSource is the catalog boundary for the tax rates applicable to a
// product. Consulted when a line's tax breakdown is (re)built.
type TaxRateSource interface {
	RatesForProduct(ctx context.Context, productID uuid.UUID) ([]TaxRate, error)
}

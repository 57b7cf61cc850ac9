package purchase

import (
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RequisitionLine is a line of a purchase requisition that purchase order
// lines can reference. PurchasedQuantity is a running aggregate recomputed by
// the line cascade whenever a referencing order line changes.
type RequisitionLine struct {
	shared.BaseEntity
	RequisitionID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PurchasedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DeletedAt         gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for GORM
func (RequisitionLine) TableName() string {
	return "requisition_lines"
}

// NewRequisitionLine creates a requisition line
func NewRequisitionLine(requisitionID, productID uuid.UUID, quantity decimal.Decimal) (*RequisitionLine, error) {
	if requisitionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUISITION", "Requisition ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return &RequisitionLine{
		BaseEntity:        shared.NewBaseEntity(),
		RequisitionID:     requisitionID,
		ProductID:         productID,
		Quantity:          quantity,
		PurchasedQuantity: decimal.Zero,
	}, nil
}

// SetPurchasedQuantity stores the recomputed purchased aggregate
func (r *RequisitionLine) SetPurchasedQuantity(quantity decimal.Decimal) {
	r.PurchasedQuantity = quantity
}

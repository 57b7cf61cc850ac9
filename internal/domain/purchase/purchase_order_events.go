package purchase

import (
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Event type constants
const (
	EventTypePurchaseOrderCreated = "PurchaseOrderCreated"
)

// PurchaseOrderCreatedEvent is raised when a new purchase order is created
// with its sequenced document number
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID `json:"order_id"`
	DocumentNumber string    `json:"document_number"`
	SupplierID     uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID, order.OrganizationID),
		OrderID:         order.ID,
		DocumentNumber:  order.DocumentNumber(),
		SupplierID:      order.SupplierID,
	}
}

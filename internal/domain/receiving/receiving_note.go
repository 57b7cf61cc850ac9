package receiving

import (
	"time"

	"github.com/erp/backoffice/internal/domain/numbering"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status represents the lifecycle state of a receiving note
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusCompleted Status = "COMPLETED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	// COMPLETED is terminal; there is no way back to DRAFT.
	return s == StatusDraft && target == StatusCompleted
}

// ReceivingNote records goods received against a purchase order. Completion
// is its only state transition and fans out to stock movements, the source
// lines' received aggregates and the order's received status.
type ReceivingNote struct {
	shared.BaseEntity
	shared.DocumentScope
	Number          int64     `gorm:"not null;uniqueIndex:ux_receiving_notes_scope_number"`
	NumberPrefix    string    `gorm:"type:varchar(20);not null;default:''"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	LocationID      uuid.UUID `gorm:"type:uuid;not null"`
	Date            time.Time `gorm:"not null"`
	Status          Status    `gorm:"type:varchar(20);not null"`
	CompletedAt     *time.Time
	Lines           []ReceivingLine `gorm:"foreignKey:NoteID"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for GORM
func (ReceivingNote) TableName() string {
	return "receiving_notes"
}

// NewReceivingNote creates a draft receiving note for a purchase order
func NewReceivingNote(scope shared.DocumentScope, purchaseOrderID, locationID uuid.UUID, date time.Time) (*ReceivingNote, error) {
	if scope.OrganizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Purchase order ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	return &ReceivingNote{
		BaseEntity:      shared.NewBaseEntity(),
		DocumentScope:   scope,
		PurchaseOrderID: purchaseOrderID,
		LocationID:      locationID,
		Date:            date,
		Status:          StatusDraft,
	}, nil
}

// AssignNumber sets the sequenced number and resolved prefix
func (n *ReceivingNote) AssignNumber(number int64, prefix string) {
	n.Number = number
	n.NumberPrefix = prefix
}

// DocumentNumber renders the human-facing number (prefix + zero-padded value)
func (n *ReceivingNote) DocumentNumber() string {
	return numbering.FormatNumber(n.NumberPrefix, n.Number)
}

// AddLine adds a receiving line against a purchase order line
func (n *ReceivingNote) AddLine(orderLineID, productID uuid.UUID, quantity decimal.Decimal) (*ReceivingLine, error) {
	if n.Status != StatusDraft {
		return nil, shared.ErrInvalidState
	}
	line, err := NewReceivingLine(n.ID, orderLineID, productID, quantity)
	if err != nil {
		return nil, err
	}
	n.Lines = append(n.Lines, *line)
	return line, nil
}

// Complete transitions the note to its terminal state. Quantity validation
// against the source order lines happens before this is called, inside the
// same transaction that persists the transition.
func (n *ReceivingNote) Complete(now time.Time) error {
	if !n.Status.CanTransitionTo(StatusCompleted) {
		return shared.ErrInvalidState
	}
	n.Status = StatusCompleted
	n.CompletedAt = &now
	n.UpdatedAt = now
	return nil
}

// MovementTimestamp combines the note's declared date with the time-of-day of
// the actual completion instant. Stock movements are dated on the day the
// goods were declared received, ordered by when completion really happened.
func (n *ReceivingNote) MovementTimestamp(completedAt time.Time) time.Time {
	return time.Date(
		n.Date.Year(), n.Date.Month(), n.Date.Day(),
		completedAt.Hour(), completedAt.Minute(), completedAt.Second(), completedAt.Nanosecond(),
		completedAt.Location(),
	)
}

// ReceivingLine is one received-quantity entry against a purchase order line
type ReceivingLine struct {
	shared.BaseEntity
	NoteID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderLineID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for GORM
func (ReceivingLine) TableName() string {
	return "receiving_lines"
}

// NewReceivingLine creates a receiving line
func NewReceivingLine(noteID, orderLineID, productID uuid.UUID, quantity decimal.Decimal) (*ReceivingLine, error) {
	if orderLineID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER_LINE", "Order line ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return &ReceivingLine{
		BaseEntity:  shared.NewBaseEntity(),
		NoteID:      noteID,
		OrderLineID: orderLineID,
		ProductID:   productID,
		Quantity:    quantity,
	}, nil
}

// ValidateAgainstPending checks a requested quantity against the pending
// quantity of its source order line. Both failures abort the whole completion
// attempt; there is no partial receive.
func ValidateAgainstPending(requested, pending decimal.Decimal) error {
	if !pending.IsPositive() {
		return shared.ErrNoPendingQuantity
	}
	if requested.GreaterThan(pending) {
		return shared.ErrExceedsPendingQuantity
	}
	return nil
}

package receiving

import (
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovement is an append-only ledger entry created once per receiving
// line at completion time. It is never mutated after creation; corrections
// are new movements, not edits.
type StockMovement struct {
	shared.BaseEntity
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	DocumentType   string          `gorm:"type:varchar(50);not null"`
	DocumentID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EffectiveAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// DocumentTypeReceivingNote is the source document type for movements created
// by receiving note completion
const DocumentTypeReceivingNote = "ReceivingNote"

// NewStockMovement creates a ledger entry for a completed receiving line
func NewStockMovement(note *ReceivingNote, line *ReceivingLine, effectiveAt time.Time) *StockMovement {
	return &StockMovement{
		BaseEntity:     shared.NewBaseEntity(),
		OrganizationID: note.OrganizationID,
		ProductID:      line.ProductID,
		LocationID:     note.LocationID,
		DocumentType:   DocumentTypeReceivingNote,
		DocumentID:     note.ID,
		Quantity:       line.Quantity,
		EffectiveAt:    effectiveAt,
	}
}

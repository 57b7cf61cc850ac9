package receiving

import (
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeReceivingNote = "ReceivingNote"

// Event type constants
const (
	EventTypeReceivingNoteCompleted = "ReceivingNoteCompleted"
)

// ReceivedLineInfo represents line information for events
type ReceivedLineInfo struct {
	LineID      uuid.UUID       `json:"line_id"`
	OrderLineID uuid.UUID       `json:"order_line_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ReceivingNoteCompletedEvent is raised exactly once per successful
// completion, after the transaction that persisted the transition committed
type ReceivingNoteCompletedEvent struct {
	shared.BaseDomainEvent
	NoteID          uuid.UUID          `json:"note_id"`
	DocumentNumber  string             `json:"document_number"`
	PurchaseOrderID uuid.UUID          `json:"purchase_order_id"`
	LocationID      uuid.UUID          `json:"location_id"`
	CompletedAt     time.Time          `json:"completed_at"`
	Lines           []ReceivedLineInfo `json:"lines"`
}

// NewReceivingNoteCompletedEvent creates a new ReceivingNoteCompletedEvent
func NewReceivingNoteCompletedEvent(note *ReceivingNote, completedAt time.Time) *ReceivingNoteCompletedEvent {
	lines := make([]ReceivedLineInfo, len(note.Lines))
	for i, line := range note.Lines {
		lines[i] = ReceivedLineInfo{
			LineID:      line.ID,
			OrderLineID: line.OrderLineID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
		}
	}
	return &ReceivingNoteCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceivingNoteCompleted, AggregateTypeReceivingNote, note.ID, note.OrganizationID),
		NoteID:          note.ID,
		DocumentNumber:  note.DocumentNumber(),
		PurchaseOrderID: note.PurchaseOrderID,
		LocationID:      note.LocationID,
		CompletedAt:     completedAt,
		Lines:           lines,
	}
}

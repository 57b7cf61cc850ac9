package receiving

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// NoteRepository defines the interface for receiving note persistence
type NoteRepository interface {
	// FindByID finds a receiving note by ID (lines preloaded)
	FindByID(ctx context.Context, id uuid.UUID) (*ReceivingNote, error)

	// FindByIDForOrganization finds a receiving note by ID within an organization
	FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*ReceivingNote, error)

	// Save creates or updates a receiving note with its lines
	Save(ctx context.Context, note *ReceivingNote) error

	// CurrentMaxNumber returns the highest document number in the scope,
	// counting soft-deleted notes, or 0 when the scope is empty
	CurrentMaxNumber(ctx context.Context, scope shared.DocumentScope) (int64, error)
}

// StockMovementRepository defines the interface for the stock ledger.
// Movements are append-only; there is no update or delete.
type StockMovementRepository interface {
	// Append inserts ledger entries
	Append(ctx context.Context, movements []StockMovement) error

	// FindByDocument returns the ledger entries created by a source document
	FindByDocument(ctx context.Context, documentType string, documentID uuid.UUID) ([]StockMovement, error)
}

package receiving

import (
	"time"

	"github.com/erp/backoffice/internal/domain/receiving"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateNoteRequest represents a request to create a receiving note
type CreateNoteRequest struct {
	CompanyID       *uuid.UUID              `json:"company_id"`
	PurchaseOrderID uuid.UUID               `json:"purchase_order_id" binding:"required"`
	LocationID      uuid.UUID               `json:"location_id" binding:"required"`
	Date            time.Time               `json:"date" binding:"required"`
	Lines           []CreateNoteLineRequest `json:"lines"`
}

// CreateNoteLineRequest represents a line in a create or add-line request
type CreateNoteLineRequest struct {
	OrderLineID uuid.UUID       `json:"order_line_id" binding:"required"`
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// NoteResponse represents a receiving note in API responses
type NoteResponse struct {
	ID              uuid.UUID          `json:"id"`
	OrganizationID  uuid.UUID          `json:"organization_id"`
	CompanyID       *uuid.UUID         `json:"company_id"`
	DocumentNumber  string             `json:"document_number"`
	PurchaseOrderID uuid.UUID          `json:"purchase_order_id"`
	LocationID      uuid.UUID          `json:"location_id"`
	Date            time.Time          `json:"date"`
	Status          string             `json:"status"`
	CompletedAt     *time.Time         `json:"completed_at,omitempty"`
	Lines           []NoteLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// NoteLineResponse represents a receiving note line in API responses
type NoteLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderLineID uuid.UUID       `json:"order_line_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ToNoteResponse converts a domain receiving note to its API representation
func ToNoteResponse(note *receiving.ReceivingNote) *NoteResponse {
	resp := &NoteResponse{
		ID:              note.ID,
		OrganizationID:  note.OrganizationID,
		CompanyID:       note.CompanyID,
		DocumentNumber:  note.DocumentNumber(),
		PurchaseOrderID: note.PurchaseOrderID,
		LocationID:      note.LocationID,
		Date:            note.Date,
		Status:          note.Status.String(),
		CompletedAt:     note.CompletedAt,
		CreatedAt:       note.CreatedAt,
		UpdatedAt:       note.UpdatedAt,
	}
	for _, line := range note.Lines {
		resp.Lines = append(resp.Lines, NoteLineResponse{
			ID:          line.ID,
			OrderLineID: line.OrderLineID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
		})
	}
	return resp
}

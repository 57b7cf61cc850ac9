package persistence

import (
	"context"
	"errors"

	"github.com/erp/backoffice/internal/domain/receiving"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNoteRepository implements receiving.NoteRepository using GORM
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GormNoteRepository
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// FindByID finds a receiving note by its ID with lines preloaded
func (r *GormNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*receiving.ReceivingNote, error) {
	var note receiving.ReceivingNote
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindByIDForOrganization finds a receiving note by ID within an organization
func (r *GormNoteRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*receiving.ReceivingNote, error) {
	var note receiving.ReceivingNote
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// Save creates or updates a receiving note with its lines. A number collision
// surfaces as a concurrency conflict so the sequencer can retry.
func (r *GormNoteRepository) Save(ctx context.Context, note *receiving.ReceivingNote) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(note).Error; err != nil {
			return err
		}
		for i := range note.Lines {
			note.Lines[i].NoteID = note.ID
			if err := tx.Save(&note.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrConcurrencyConflict
		}
		return err
	}
	return nil
}

// CurrentMaxNumber returns the highest document number in the scope, counting
// soft-deleted notes
func (r *GormNoteRepository) CurrentMaxNumber(ctx context.Context, scope shared.DocumentScope) (int64, error) {
	query := r.db.WithContext(ctx).Unscoped().
		Model(&receiving.ReceivingNote{}).
		Where("organization_id = ?", scope.OrganizationID)
	if scope.CompanyID != nil {
		query = query.Where("company_id = ?", *scope.CompanyID)
	} else {
		query = query.Where("company_id IS NULL")
	}

	var max int64
	if err := query.Select("COALESCE(MAX(number), 0)").Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// GormStockMovementRepository implements receiving.StockMovementRepository
// using GORM. The ledger is append-only.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append inserts ledger entries
func (r *GormStockMovementRepository) Append(ctx context.Context, movements []receiving.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&movements).Error
}

// FindByDocument returns the ledger entries created by a source document
func (r *GormStockMovementRepository) FindByDocument(ctx context.Context, documentType string, documentID uuid.UUID) ([]receiving.StockMovement, error) {
	var movements []receiving.StockMovement
	if err := r.db.WithContext(ctx).
		Where("document_type = ? AND document_id = ?", documentType, documentID).
		Order("effective_at").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Interface compliance checks
var _ receiving.NoteRepository = (*GormNoteRepository)(nil)
var _ receiving.StockMovementRepository = (*GormStockMovementRepository)(nil)

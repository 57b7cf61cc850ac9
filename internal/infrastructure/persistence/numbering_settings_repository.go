package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/backoffice/internal/domain/numbering"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSettingsRepository implements numbering.SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindOrganizationLevel finds the organization-wide row for a document type.
// Returns (nil, nil) when no row exists.
func (r *GormSettingsRepository) FindOrganizationLevel(ctx context.Context, documentType numbering.DocumentType, organizationID uuid.UUID) (*numbering.SettingsRecord, error) {
	var record numbering.SettingsRecord
	err := r.db.WithContext(ctx).
		Where("document_type = ? AND organization_id = ? AND company_id IS NULL", documentType, organizationID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindCompanyLevel finds the company override row for a document type.
// Returns (nil, nil) when no row exists.
func (r *GormSettingsRepository) FindCompanyLevel(ctx context.Context, documentType numbering.DocumentType, organizationID, companyID uuid.UUID) (*numbering.SettingsRecord, error) {
	var record numbering.SettingsRecord
	err := r.db.WithContext(ctx).
		Where("document_type = ? AND organization_id = ? AND company_id = ?", documentType, organizationID, companyID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Save creates or updates a settings row
func (r *GormSettingsRepository) Save(ctx context.Context, record *numbering.SettingsRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// SettingsResolver resolves effective numbering settings by overlaying the
// company row on the organization row field by field. Missing rows fall
// through to the next level; a failed lookup never does.
type SettingsResolver struct {
	repo numbering.SettingsRepository
}

// NewSettingsResolver creates a SettingsResolver over a settings repository
func NewSettingsResolver(repo numbering.SettingsRepository) *SettingsResolver {
	return &SettingsResolver{repo: repo}
}

// Resolve walks company -> organization -> application default
func (r *SettingsResolver) Resolve(ctx context.Context, scope numbering.Scope) (numbering.Settings, error) {
	orgRecord, err := r.repo.FindOrganizationLevel(ctx, scope.DocumentType, scope.OrganizationID)
	if err != nil {
		return numbering.Settings{}, fmt.Errorf("%w: %v", shared.ErrSettingsResolution, err)
	}

	var organization numbering.Settings
	if orgRecord != nil {
		organization = orgRecord.Settings()
	}

	if scope.CompanyID == nil {
		return organization, nil
	}

	companyRecord, err := r.repo.FindCompanyLevel(ctx, scope.DocumentType, scope.OrganizationID, *scope.CompanyID)
	if err != nil {
		return numbering.Settings{}, fmt.Errorf("%w: %v", shared.ErrSettingsResolution, err)
	}

	var company numbering.Settings
	if companyRecord != nil {
		company = companyRecord.Settings()
	}
	return numbering.Merge(company, organization), nil
}

// Interface compliance checks
var _ numbering.SettingsRepository = (*GormSettingsRepository)(nil)
var _ numbering.SettingsResolver = (*SettingsResolver)(nil)

package numbering

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// SettingsRecord is one stored settings row. Organization-level rows have a
// nil CompanyID; company-level rows override them field by field.
type SettingsRecord struct {
	shared.BaseEntity
	OrganizationID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:ux_numbering_settings_scope"`
	CompanyID      *uuid.UUID   `gorm:"type:uuid;uniqueIndex:ux_numbering_settings_scope"`
	DocumentType   DocumentType `gorm:"type:varchar(32);not null;uniqueIndex:ux_numbering_settings_scope"`
	StartingNumber *int64
	Prefix         *string `gorm:"type:varchar(32)"`
}

// TableName returns the table name for GORM
func (SettingsRecord) TableName() string {
	return "numbering_settings"
}

// NewSettingsRecord creates a settings row for a scope
func NewSettingsRecord(scope Scope, startingNumber *int64, prefix *string) (*SettingsRecord, error) {
	if !scope.DocumentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Unknown document type")
	}
	if scope.OrganizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if startingNumber != nil && *startingNumber < DefaultStartingNumber {
		return nil, shared.NewDomainError("INVALID_STARTING_NUMBER", "Starting number must be at least 1")
	}
	return &SettingsRecord{
		BaseEntity:     shared.NewBaseEntity(),
		OrganizationID: scope.OrganizationID,
		CompanyID:      scope.CompanyID,
		DocumentType:   scope.DocumentType,
		StartingNumber: startingNumber,
		Prefix:         prefix,
	}, nil
}

// Settings converts the stored row to its value form
func (r *SettingsRecord) Settings() Settings {
	return Settings{StartingNumber: r.StartingNumber, Prefix: r.Prefix}
}

// SettingsRepository defines the interface for numbering settings persistence.
// Both finders return (nil, nil) when no row exists at that level.
type SettingsRepository interface {
	// FindOrganizationLevel finds the organization-wide row for a document type
	FindOrganizationLevel(ctx context.Context, documentType DocumentType, organizationID uuid.UUID) (*SettingsRecord, error)

	// FindCompanyLevel finds the company override row for a document type
	FindCompanyLevel(ctx context.Context, documentType DocumentType, organizationID, companyID uuid.UUID) (*SettingsRecord, error)

	// Save creates or updates a settings row
	Save(ctx context.Context, record *SettingsRecord) error
}

package numbering

import (
	"context"

	"github.com/erp/backoffice/internal/domain/numbering"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// scopeOf builds the document scope for an organization with an optional
// company override
func scopeOf(organizationID uuid.UUID, companyID *uuid.UUID) shared.DocumentScope {
	if companyID != nil {
		return shared.NewCompanyScope(organizationID, *companyID)
	}
	return shared.NewDocumentScope(organizationID)
}

// UpsertSettingsRequest configures numbering for one scope. Nil fields mean
// "not configured at this level" and fall through to the next level.
type UpsertSettingsRequest struct {
	CompanyID      *uuid.UUID             `json:"company_id"`
	DocumentType   numbering.DocumentType `json:"document_type" binding:"required"`
	StartingNumber *int64                 `json:"starting_number"`
	Prefix         *string                `json:"prefix"`
}

// SettingsResponse is the stored or effective numbering configuration
type SettingsResponse struct {
	OrganizationID uuid.UUID              `json:"organization_id"`
	CompanyID      *uuid.UUID             `json:"company_id,omitempty"`
	DocumentType   numbering.DocumentType `json:"document_type"`
	StartingNumber int64                  `json:"starting_number"`
	Prefix         string                 `json:"prefix"`
}

// SettingsService manages numbering settings rows and reports the effective
// configuration for a scope
type SettingsService struct {
	repo     numbering.SettingsRepository
	resolver numbering.SettingsResolver
	logger   *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo numbering.SettingsRepository, resolver numbering.SettingsResolver, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

// Upsert creates or updates the settings row for a scope
func (s *SettingsService) Upsert(ctx context.Context, organizationID uuid.UUID, req UpsertSettingsRequest) (*SettingsResponse, error) {
	scope, err := numbering.NewScope(req.DocumentType, scopeOf(organizationID, req.CompanyID))
	if err != nil {
		return nil, err
	}

	existing, err := s.findExisting(ctx, scope)
	if err != nil {
		return nil, err
	}

	var record *numbering.SettingsRecord
	if existing != nil {
		existing.StartingNumber = req.StartingNumber
		existing.Prefix = req.Prefix
		record = existing
	} else {
		record, err = numbering.NewSettingsRecord(scope, req.StartingNumber, req.Prefix)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("numbering settings saved",
		zap.String("document_type", scope.DocumentType.String()),
		zap.String("organization_id", organizationID.String()),
	)

	settings := record.Settings()
	return toSettingsResponse(scope, settings), nil
}

// ResolveEffective reports the effective settings for a scope after the
// company -> organization -> application default walk
func (s *SettingsService) ResolveEffective(ctx context.Context, organizationID uuid.UUID, documentType numbering.DocumentType, companyID *uuid.UUID) (*SettingsResponse, error) {
	scope, err := numbering.NewScope(documentType, scopeOf(organizationID, companyID))
	if err != nil {
		return nil, err
	}

	settings, err := s.resolver.Resolve(ctx, scope)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(scope, settings), nil
}

func (s *SettingsService) findExisting(ctx context.Context, scope numbering.Scope) (*numbering.SettingsRecord, error) {
	if scope.CompanyID != nil {
		return s.repo.FindCompanyLevel(ctx, scope.DocumentType, scope.OrganizationID, *scope.CompanyID)
	}
	return s.repo.FindOrganizationLevel(ctx, scope.DocumentType, scope.OrganizationID)
}

func toSettingsResponse(scope numbering.Scope, settings numbering.Settings) *SettingsResponse {
	return &SettingsResponse{
		OrganizationID: scope.OrganizationID,
		CompanyID:      scope.CompanyID,
		DocumentType:   scope.DocumentType,
		StartingNumber: settings.EffectiveStartingNumber(),
		Prefix:         settings.EffectivePrefix(),
	}
}

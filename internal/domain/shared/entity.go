package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DocumentScope identifies the (organization, optional company) pair a
// document belongs to. Document numbers are unique and monotonic within a
// scope; all tenant-filtered queries carry at least the organization ID.
type DocumentScope struct {
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompanyID      *uuid.UUID `gorm:"type:uuid;index"`
}

// NewDocumentScope creates an organization-level scope
func NewDocumentScope(organizationID uuid.UUID) DocumentScope {
	return DocumentScope{OrganizationID: organizationID}
}

// NewCompanyScope creates a company-level scope
func NewCompanyScope(organizationID, companyID uuid.UUID) DocumentScope {
	return DocumentScope{OrganizationID: organizationID, CompanyID: &companyID}
}

// HasCompany reports whether a company is attached to the scope
func (s DocumentScope) HasCompany() bool {
	return s.CompanyID != nil
}

// Equals compares two scopes field by field
func (s DocumentScope) Equals(other DocumentScope) bool {
	if s.OrganizationID != other.OrganizationID {
		return false
	}
	if (s.CompanyID == nil) != (other.CompanyID == nil) {
		return false
	}
	return s.CompanyID == nil || *s.CompanyID == *other.CompanyID
}

package numbering

import (
	"context"
	"fmt"

	"github.com/erp/backoffice/internal/domain/shared"
)

// DocumentType identifies a numbered document family. Each type has its own
// number sequence per scope and its own settings keys.
type DocumentType string

const (
	DocumentTypePurchaseOrder     DocumentType = "PURCHASE_ORDER"
	DocumentTypeGoodsReceivedNote DocumentType = "GOODS_RECEIVED_NOTE"
	DocumentTypeSalesInvoice      DocumentType = "SALES_INVOICE"
)

// IsValid checks if the type is a known DocumentType
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypePurchaseOrder, DocumentTypeGoodsReceivedNote, DocumentTypeSalesInvoice:
		return true
	}
	return false
}

// String returns the string representation of DocumentType
func (t DocumentType) String() string {
	return string(t)
}

// Scope is the (document type, organization, optional company) triple within
// which numbers are strictly increasing and never reused.
type Scope struct {
	DocumentType DocumentType
	shared.DocumentScope
}

// NewScope creates a numbering scope
func NewScope(documentType DocumentType, docScope shared.DocumentScope) (Scope, error) {
	if !documentType.IsValid() {
		return Scope{}, shared.NewDomainError("INVALID_DOCUMENT_TYPE", fmt.Sprintf("Unknown document type %q", documentType))
	}
	return Scope{DocumentType: documentType, DocumentScope: docScope}, nil
}

// DefaultStartingNumber is the application default when neither company nor
// organization settings specify one.
const DefaultStartingNumber int64 = 1

// numberWidth is the zero-padded width of the rendered document number.
const numberWidth = 5

// Settings holds the numbering configuration effective for one scope.
// Nil fields mean "not configured at this level".
type Settings struct {
	StartingNumber *int64
	Prefix         *string
}

// EffectiveStartingNumber returns the configured starting number or the
// application default
func (s Settings) EffectiveStartingNumber() int64 {
	if s.StartingNumber != nil {
		return *s.StartingNumber
	}
	return DefaultStartingNumber
}

// EffectivePrefix returns the configured prefix or the empty string
func (s Settings) EffectivePrefix() string {
	if s.Prefix != nil {
		return *s.Prefix
	}
	return ""
}

// Merge overlays company-level settings on organization-level settings field
// by field. A company that leaves a field unset inherits the organization
// value for that field; a fully unset chain falls back to the application
// default.
func Merge(company, organization Settings) Settings {
	merged := organization
	if company.StartingNumber != nil {
		merged.StartingNumber = company.StartingNumber
	}
	if company.Prefix != nil {
		merged.Prefix = company.Prefix
	}
	return merged
}

// SettingsResolver resolves the effective numbering settings for a scope by
// walking company -> organization -> application default. Implementations
// must propagate lookup failures as shared.ErrSettingsResolution rather than
// silently defaulting: a silent default would corrupt numbering expectations.
type SettingsResolver interface {
	Resolve(ctx context.Context, scope Scope) (Settings, error)
}

// FormatNumber renders the human-facing document number: the resolved prefix
// followed by the raw number left-padded with zeros to five digits. This is
// presentation only; the raw number is the stored truth.
func FormatNumber(prefix string, number int64) string {
	return fmt.Sprintf("%s%0*d", prefix, numberWidth, number)
}

// NextAfter computes the number to assign, given the effective starting
// number and the current maximum in the scope (0 when the scope is empty;
// soft-deleted documents count toward the maximum).
func NextAfter(startingNumber, currentMax int64) int64 {
	if startingNumber < DefaultStartingNumber {
		startingNumber = DefaultStartingNumber
	}
	next := currentMax + 1
	if startingNumber > next {
		return startingNumber
	}
	return next
}

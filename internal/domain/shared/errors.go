package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)

// Errors specific to the financial-document core
var (
	// ErrInvalidCalculationInput is surfaced at the input boundary when a
	// calculation method is neither empty nor one of the known values.
	// Derived-field computation itself stays total and treats unknown
	// methods as a zero contribution.
	ErrInvalidCalculationInput = NewDomainError("INVALID_CALCULATION_INPUT", "Unrecognized calculation method")

	// ErrNoPendingQuantity means a receiving line's source order line has
	// nothing left to receive.
	ErrNoPendingQuantity = NewDomainError("NO_PENDING_QUANTITY", "Source order line has no pending quantity")

	// ErrExceedsPendingQuantity means a receiving line asks for more than
	// the source order line's pending quantity.
	ErrExceedsPendingQuantity = NewDomainError("EXCEEDS_PENDING_QUANTITY", "Received quantity exceeds pending quantity")

	// ErrNumberingConflict is returned when document number allocation keeps
	// colliding after the retry limit is reached.
	ErrNumberingConflict = NewDomainError("NUMBERING_CONFLICT", "Could not allocate a unique document number")

	// ErrSettingsResolution is returned when the numbering settings lookup
	// fails. Allocation stops instead of falling back to defaults.
	ErrSettingsResolution = NewDomainError("SETTINGS_RESOLUTION_FAILED", "Numbering settings could not be resolved")
)

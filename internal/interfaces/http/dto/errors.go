package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes not
// listed here surface as 500 so that a forgotten mapping is loud rather than
// silently 200.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	"NOT_FOUND":     http.StatusNotFound,
	"INVALID_INPUT": http.StatusBadRequest,
	"INVALID_STATE": http.StatusUnprocessableEntity,

	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"NUMBERING_CONFLICT":   http.StatusConflict,

	"INVALID_CALCULATION_INPUT": http.StatusBadRequest,
	"INVALID_DOCUMENT_TYPE":     http.StatusBadRequest,
	"INVALID_ORGANIZATION":      http.StatusBadRequest,
	"INVALID_STARTING_NUMBER":   http.StatusBadRequest,

	"NO_PENDING_QUANTITY":      http.StatusUnprocessableEntity,
	"EXCEEDS_PENDING_QUANTITY": http.StatusUnprocessableEntity,
	"LINE_ORDER_MISMATCH":      http.StatusUnprocessableEntity,
	"LINE_PRODUCT_MISMATCH":    http.StatusUnprocessableEntity,

	"SETTINGS_RESOLUTION_FAILED": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

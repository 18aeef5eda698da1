package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState    = "ERR_INVALID_STATE"
	ErrCodeBusinessRule    = "ERR_BUSINESS_RULE"
	ErrCodeCustomerBlocked = "ERR_CUSTOMER_BLOCKED"
	ErrCodeExcessPayment   = "ERR_EXCESS_PAYMENT"
	ErrCodeNoJurisdiction  = "ERR_NO_JURISDICTION"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:    http.StatusUnprocessableEntity,
	ErrCodeCustomerBlocked: http.StatusUnprocessableEntity,
	ErrCodeExcessPayment:   http.StatusUnprocessableEntity,
	ErrCodeNoJurisdiction:  http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to standardized API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,

	"CUSTOMER_INACTIVE":          ErrCodeCustomerBlocked,
	"EXCESS_PAYMENT":             ErrCodeExcessPayment,
	"INDETERMINATE_JURISDICTION": ErrCodeNoJurisdiction,

	"INVALID_AMOUNT":             ErrCodeInvalidInput,
	"INVALID_CREDIT_LIMIT":       ErrCodeInvalidInput,
	"INVALID_CUSTOMER":           ErrCodeInvalidInput,
	"INVALID_CUSTOMER_CODE":      ErrCodeInvalidInput,
	"INVALID_CUSTOMER_NAME":      ErrCodeInvalidInput,
	"INVALID_DUE_DATE":           ErrCodeInvalidInput,
	"INVALID_DUE_DAYS":           ErrCodeInvalidInput,
	"INVALID_GSTIN":              ErrCodeInvalidInput,
	"INVALID_GST_CLASSIFICATION": ErrCodeInvalidInput,
	"INVALID_GST_RATE":           ErrCodeInvalidInput,
	"INVALID_INVOICE":            ErrCodeInvalidInput,
	"INVALID_INVOICE_NUMBER":     ErrCodeInvalidInput,
	"INVALID_JURISDICTION":       ErrCodeInvalidInput,
	"INVALID_OUTLET":             ErrCodeInvalidInput,
	"INVALID_OUTLET_CODE":        ErrCodeInvalidInput,
	"INVALID_OUTLET_NAME":        ErrCodeInvalidInput,
	"INVALID_PAYMENT_METHOD":     ErrCodeInvalidInput,
	"INVALID_QUANTITY":           ErrCodeInvalidInput,
	"INVALID_TAX_REGION":         ErrCodeInvalidInput,
	"INVALID_TOLERANCE":          ErrCodeInvalidInput,
	"INVALID_TREATMENT":          ErrCodeInvalidInput,
	"INVALID_UNIT_RATE":          ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// Unknown codes are treated as business rule violations rather than leaking
// raw domain codes to clients.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return ErrCodeBusinessRule
}

package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeExcessPayment, http.StatusUnprocessableEntity},
		{ErrCodeNoJurisdiction, http.StatusUnprocessableEntity},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetHTTPStatus(tt.code), tt.code)
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeCustomerBlocked, NormalizeErrorCode("CUSTOMER_INACTIVE"))
	assert.Equal(t, ErrCodeNoJurisdiction, NormalizeErrorCode("INDETERMINATE_JURISDICTION"))
	assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode("INVALID_GSTIN"))

	// Raw domain codes never leak to clients
	assert.Equal(t, ErrCodeBusinessRule, NormalizeErrorCode("SOME_NEW_DOMAIN_CODE"))
}

func TestStateCodePattern(t *testing.T) {
	valid := []string{"01", "09", "29", "38", "97", "99"}
	for _, s := range valid {
		assert.True(t, stateCodePattern.MatchString(s), s)
	}

	invalid := []string{"00", "39", "4", "100", "KA", ""}
	for _, s := range invalid {
		assert.False(t, stateCodePattern.MatchString(s), s)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 25, 2, 10)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

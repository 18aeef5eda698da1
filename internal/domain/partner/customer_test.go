package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCustomer(t *testing.T) *Customer {
	t.Helper()
	c, err := NewCustomer(uuid.New(), "cust-001", "Lakeside Events", GSTClassificationRegular)
	require.NoError(t, err)
	return c
}

func TestGSTClassification_IsValid(t *testing.T) {
	tests := []struct {
		class   GSTClassification
		isValid bool
	}{
		{GSTClassificationRegular, true},
		{GSTClassificationComposition, true},
		{GSTClassificationSEZ, true},
		{GSTClassificationOverseas, true},
		{GSTClassification("INVALID"), false},
		{GSTClassification(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.class.IsValid())
		})
	}
}

func TestNewCustomer(t *testing.T) {
	c := createTestCustomer(t)

	assert.Equal(t, "CUST-001", c.Code)
	assert.Equal(t, CustomerStatusActive, c.Status)
	assert.Equal(t, GSTClassificationRegular, c.GSTClass)
	assert.Equal(t, 15, c.DefaultDueDays)
	assert.False(t, c.HasJurisdiction())

	events := c.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeCustomerCreated, events[0].EventType())
}

func TestNewCustomer_Validation(t *testing.T) {
	tenantID := uuid.New()

	_, err := NewCustomer(tenantID, "", "Name", GSTClassificationRegular)
	assert.Error(t, err)

	_, err = NewCustomer(tenantID, "bad code!", "Name", GSTClassificationRegular)
	assert.Error(t, err)

	_, err = NewCustomer(tenantID, "C1", "", GSTClassificationRegular)
	assert.Error(t, err)

	_, err = NewCustomer(tenantID, "C1", "Name", GSTClassification("BOGUS"))
	assert.Error(t, err)
}

func TestCustomer_SetJurisdiction(t *testing.T) {
	c := createTestCustomer(t)

	require.NoError(t, c.SetJurisdiction(" ka "))
	assert.Equal(t, "KA", c.Jurisdiction)
	assert.True(t, c.HasJurisdiction())

	assert.Error(t, c.SetJurisdiction(""))
	assert.Error(t, c.SetJurisdiction("   "))
}

func TestCustomer_SetGSTIN(t *testing.T) {
	c := createTestCustomer(t)

	require.NoError(t, c.SetGSTIN("29ABCDE1234F1Z5"))
	assert.Equal(t, "29ABCDE1234F1Z5", c.GSTIN)

	// Clearing is allowed.
	require.NoError(t, c.SetGSTIN(""))

	assert.Error(t, c.SetGSTIN("NOT-A-GSTIN"))
	assert.Error(t, c.SetGSTIN("29ABCDE1234F1X5")) // Missing the fixed Z
}

func TestValidGSTIN(t *testing.T) {
	assert.True(t, ValidGSTIN("29ABCDE1234F1Z5"))
	assert.True(t, ValidGSTIN("27AAPFU0939F1ZV"))
	assert.False(t, ValidGSTIN("29abcde1234f1z5"))
	assert.False(t, ValidGSTIN("12345"))
	assert.False(t, ValidGSTIN(""))
}

func TestCustomer_SetCreditLimit(t *testing.T) {
	c := createTestCustomer(t)

	require.NoError(t, c.SetCreditLimit(decimal.NewFromInt(50000)))
	assert.True(t, c.CreditLimit.Equal(decimal.NewFromInt(50000)))

	assert.Error(t, c.SetCreditLimit(decimal.NewFromInt(-1)))
}

func TestCustomer_Deactivate(t *testing.T) {
	c := createTestCustomer(t)

	require.NoError(t, c.Deactivate("moved away"))
	assert.False(t, c.IsActive())
	assert.NotNil(t, c.DeactivatedAt)

	events := c.GetDomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventTypeCustomerDeactivated, events[1].EventType())

	assert.Error(t, c.Deactivate("again"))
}

package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// GSTClassification represents how a customer is classified for GST purposes.
// It decides the tax region of invoices raised against the customer.
type GSTClassification string

const (
	GSTClassificationRegular     GSTClassification = "REGULAR"     // Registered or unregistered domestic customer
	GSTClassificationComposition GSTClassification = "COMPOSITION" // Composition scheme dealer (taxed as domestic)
	GSTClassificationSEZ         GSTClassification = "SEZ"         // Special Economic Zone unit, zero-rated
	GSTClassificationOverseas    GSTClassification = "OVERSEAS"    // Export customer, zero-rated
)

// IsValid checks if the classification is valid
func (c GSTClassification) IsValid() bool {
	switch c {
	case GSTClassificationRegular, GSTClassificationComposition, GSTClassificationSEZ, GSTClassificationOverseas:
		return true
	}
	return false
}

// String returns the string representation of GSTClassification
func (c GSTClassification) String() string {
	return string(c)
}

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

// ValidGSTIN reports whether s has the shape of an Indian GST registration number
func ValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// Customer represents a rental customer in the partner context.
// It is the aggregate root for customer-related operations.
type Customer struct {
	shared.TenantAggregateRoot
	Code              string            `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_tenant_code,priority:2"`
	Name              string            `gorm:"type:varchar(200);not null"`
	Status            CustomerStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	Phone             string            `gorm:"type:varchar(50);index"`
	Email             string            `gorm:"type:varchar(200);index"`
	Address           string            `gorm:"type:text"`
	Jurisdiction      string            `gorm:"type:varchar(10);index"` // GST state code, empty when not yet captured
	GSTIN             string            `gorm:"type:varchar(20)"`
	GSTClass          GSTClassification `gorm:"type:varchar(20);not null;default:'REGULAR'"`
	CreditLimit       decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	DefaultDueDays    int               `gorm:"not null;default:15"` // Payment terms for new invoices
	Notes             string            `gorm:"type:text"`
	DeactivatedAt     *time.Time
	DeactivatedReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(tenantID uuid.UUID, code, name string, gstClass GSTClassification) (*Customer, error) {
	if err := validateCustomerCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}
	if !gstClass.IsValid() {
		return nil, shared.NewDomainError("INVALID_GST_CLASSIFICATION", "GST classification is not valid")
	}

	customer := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Status:              CustomerStatusActive,
		GSTClass:            gstClass,
		CreditLimit:         decimal.Zero,
		DefaultDueDays:      15,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// SetJurisdiction records the customer's GST state code
func (c *Customer) SetJurisdiction(stateCode string) error {
	stateCode = strings.ToUpper(strings.TrimSpace(stateCode))
	if stateCode == "" {
		return shared.NewDomainError("INVALID_JURISDICTION", "Jurisdiction state code cannot be empty")
	}
	if len(stateCode) > 10 {
		return shared.NewDomainError("INVALID_JURISDICTION", "Jurisdiction state code too long")
	}
	c.Jurisdiction = stateCode
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetGSTIN records the customer's GST registration number
func (c *Customer) SetGSTIN(gstin string) error {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin != "" && !ValidGSTIN(gstin) {
		return shared.NewDomainError("INVALID_GSTIN", "GSTIN format is not valid")
	}
	c.GSTIN = gstin
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetContact updates contact details
func (c *Customer) SetContact(phone, email, address string) {
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetCreditLimit updates the credit limit
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	c.CreditLimit = limit
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetDefaultDueDays updates the payment terms applied to new invoices
func (c *Customer) SetDefaultDueDays(days int) error {
	if days < 0 {
		return shared.NewDomainError("INVALID_DUE_DAYS", "Default due days cannot be negative")
	}
	c.DefaultDueDays = days
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deactivate marks the customer as inactive
func (c *Customer) Deactivate(reason string) error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Customer is already inactive")
	}
	now := time.Now()
	c.Status = CustomerStatusInactive
	c.DeactivatedAt = &now
	c.DeactivatedReason = reason
	c.UpdatedAt = now
	c.IncrementVersion()
	c.AddDomainEvent(NewCustomerDeactivatedEvent(c))
	return nil
}

// IsActive returns true if the customer can be invoiced
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// HasJurisdiction returns true when a GST state code has been captured
func (c *Customer) HasJurisdiction() bool {
	return c.Jurisdiction != ""
}

func validateCustomerCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_CODE", "Customer code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CUSTOMER_CODE", "Customer code cannot exceed 50 characters")
	}
	matched, _ := regexp.MatchString(`^[A-Za-z0-9_-]+$`, code)
	if !matched {
		return shared.NewDomainError("INVALID_CUSTOMER_CODE", "Customer code may only contain letters, digits, hyphen and underscore")
	}
	return nil
}

package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/shared"
)

// Outlet represents a rental outlet (branch) that raises invoices.
// Its jurisdiction is the supply-side state for GST classification.
type Outlet struct {
	shared.TenantAggregateRoot
	Code         string `gorm:"type:varchar(50);not null;uniqueIndex:idx_outlet_tenant_code,priority:2"`
	Name         string `gorm:"type:varchar(200);not null"`
	Jurisdiction string `gorm:"type:varchar(10);not null"` // GST state code of the outlet
	GSTIN        string `gorm:"type:varchar(20)"`
	Address      string `gorm:"type:text"`
	Phone        string `gorm:"type:varchar(50)"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Outlet) TableName() string {
	return "outlets"
}

// NewOutlet creates a new outlet. Jurisdiction is mandatory: an outlet
// without a state code cannot classify any invoice it raises.
func NewOutlet(tenantID uuid.UUID, code, name, jurisdiction string) (*Outlet, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_OUTLET_CODE", "Outlet code cannot be empty")
	}
	if matched, _ := regexp.MatchString(`^[A-Za-z0-9_-]+$`, code); !matched {
		return nil, shared.NewDomainError("INVALID_OUTLET_CODE", "Outlet code may only contain letters, digits, hyphen and underscore")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_OUTLET_NAME", "Outlet name cannot be empty")
	}
	jurisdiction = strings.ToUpper(strings.TrimSpace(jurisdiction))
	if jurisdiction == "" {
		return nil, shared.NewDomainError("INVALID_JURISDICTION", "Outlet jurisdiction state code cannot be empty")
	}

	return &Outlet{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Jurisdiction:        jurisdiction,
		Active:              true,
	}, nil
}

// SetGSTIN records the outlet's GST registration number
func (o *Outlet) SetGSTIN(gstin string) error {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin != "" && !ValidGSTIN(gstin) {
		return shared.NewDomainError("INVALID_GSTIN", "GSTIN format is not valid")
	}
	o.GSTIN = gstin
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// SetContact updates address and phone
func (o *Outlet) SetContact(address, phone string) {
	o.Address = address
	o.Phone = phone
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Close marks the outlet as inactive
func (o *Outlet) Close() {
	o.Active = false
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

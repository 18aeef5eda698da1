package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentworks/backend/internal/domain/partner"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Code           string           `json:"code" binding:"required,min=1,max=50"`
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	GSTClass       string           `json:"gst_class" binding:"omitempty,oneof=REGULAR COMPOSITION SEZ OVERSEAS"`
	Jurisdiction   string           `json:"jurisdiction" binding:"omitempty,statecode"`
	GSTIN          string           `json:"gstin" binding:"omitempty,gstin"`
	Phone          string           `json:"phone" binding:"max=50"`
	Email          string           `json:"email" binding:"omitempty,email,max=200"`
	Address        string           `json:"address" binding:"max=500"`
	CreditLimit    *decimal.Decimal `json:"credit_limit"`
	DefaultDueDays *int             `json:"default_due_days" binding:"omitempty,min=0,max=365"`
	Notes          string           `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer.
// Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Jurisdiction   *string          `json:"jurisdiction" binding:"omitempty,statecode"`
	GSTIN          *string          `json:"gstin" binding:"omitempty,gstin"`
	Phone          *string          `json:"phone" binding:"omitempty,max=50"`
	Email          *string          `json:"email" binding:"omitempty,email,max=200"`
	Address        *string          `json:"address" binding:"omitempty,max=500"`
	CreditLimit    *decimal.Decimal `json:"credit_limit"`
	DefaultDueDays *int             `json:"default_due_days" binding:"omitempty,min=0,max=365"`
}

// DeactivateCustomerRequest carries the reason for deactivation
type DeactivateCustomerRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	GSTClass       string          `json:"gst_class"`
	Jurisdiction   string          `json:"jurisdiction"`
	GSTIN          string          `json:"gstin"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	DefaultDueDays int             `json:"default_due_days"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		TenantID:       c.TenantID,
		Code:           c.Code,
		Name:           c.Name,
		Status:         string(c.Status),
		GSTClass:       string(c.GSTClass),
		Jurisdiction:   c.Jurisdiction,
		GSTIN:          c.GSTIN,
		Phone:          c.Phone,
		Email:          c.Email,
		Address:        c.Address,
		CreditLimit:    c.CreditLimit,
		DefaultDueDays: c.DefaultDueDays,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// =============================================================================
// Outlet DTOs
// =============================================================================

// CreateOutletRequest represents a request to create a new outlet
type CreateOutletRequest struct {
	Code         string `json:"code" binding:"required,min=1,max=50"`
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Jurisdiction string `json:"jurisdiction" binding:"required,statecode"`
	GSTIN        string `json:"gstin" binding:"omitempty,gstin"`
	Address      string `json:"address" binding:"max=500"`
	Phone        string `json:"phone" binding:"max=50"`
}

// OutletResponse represents an outlet in API responses
type OutletResponse struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Jurisdiction string    `json:"jurisdiction"`
	GSTIN        string    `json:"gstin"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToOutletResponse converts a domain outlet to a response DTO
func ToOutletResponse(o *partner.Outlet) OutletResponse {
	return OutletResponse{
		ID:           o.ID,
		TenantID:     o.TenantID,
		Code:         o.Code,
		Name:         o.Name,
		Jurisdiction: o.Jurisdiction,
		GSTIN:        o.GSTIN,
		Address:      o.Address,
		Phone:        o.Phone,
		Active:       o.Active,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

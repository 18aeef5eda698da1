package partner

import (
	"github.com/rentworks/backend/internal/domain/shared"
)

// Event types for the customer aggregate
const (
	EventTypeCustomerCreated     = "partner.customer.created"
	EventTypeCustomerDeactivated = "partner.customer.deactivated"
)

// CustomerCreatedEvent is raised when a customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	GSTClass GSTClassification `json:"gst_classification"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, c.ID, "Customer", c.TenantID),
		Code:            c.Code,
		Name:            c.Name,
		GSTClass:        c.GSTClass,
	}
}

// CustomerDeactivatedEvent is raised when a customer is deactivated
type CustomerDeactivatedEvent struct {
	shared.BaseDomainEvent
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// NewCustomerDeactivatedEvent creates a new CustomerDeactivatedEvent
func NewCustomerDeactivatedEvent(c *Customer) *CustomerDeactivatedEvent {
	return &CustomerDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDeactivated, c.ID, "Customer", c.TenantID),
		Code:            c.Code,
		Reason:          c.DeactivatedReason,
	}
}

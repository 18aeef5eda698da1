package billing

import (
	"time"

	"github.com/rentworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the invoice aggregate
const (
	EventTypeInvoiceCreated         = "billing.invoice.created"
	EventTypeInvoicePaymentRecorded = "billing.invoice.payment_recorded"
	EventTypeInvoicePaid            = "billing.invoice.paid"
	EventTypeInvoiceOverdue         = "billing.invoice.overdue"
)

const aggregateTypeInvoice = "Invoice"

// InvoiceCreatedEvent is raised when an invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Treatment     TaxTreatment    `json:"treatment"`
	LineCount     int             `json:"line_count"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, inv.ID, aggregateTypeInvoice, inv.TenantID),
		InvoiceNumber:   inv.InvoiceNumber,
		TotalAmount:     inv.TotalAmount,
		Treatment:       inv.Treatment,
		LineCount:       len(inv.Lines),
	}
}

// InvoicePaymentRecordedEvent is raised for every accepted payment
type InvoicePaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber   string          `json:"invoice_number"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentReceived decimal.Decimal `json:"payment_received"`
	Status          PaymentStatus   `json:"status"`
}

// NewInvoicePaymentRecordedEvent creates a new InvoicePaymentRecordedEvent
func NewInvoicePaymentRecordedEvent(inv *Invoice, amount decimal.Decimal) *InvoicePaymentRecordedEvent {
	return &InvoicePaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaymentRecorded, inv.ID, aggregateTypeInvoice, inv.TenantID),
		InvoiceNumber:   inv.InvoiceNumber,
		Amount:          amount,
		PaymentReceived: inv.PaymentReceived,
		Status:          inv.Status,
	}
}

// InvoicePaidEvent is raised when the invoice becomes fully settled
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAt        time.Time       `json:"paid_at"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	paidAt := time.Now()
	if inv.PaidAt != nil {
		paidAt = *inv.PaidAt
	}
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, inv.ID, aggregateTypeInvoice, inv.TenantID),
		InvoiceNumber:   inv.InvoiceNumber,
		TotalAmount:     inv.TotalAmount,
		PaidAt:          paidAt,
	}
}

// InvoiceOverdueEvent is raised when the sweep marks an invoice overdue
type InvoiceOverdueEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	DueDate       time.Time       `json:"due_date"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// NewInvoiceOverdueEvent creates a new InvoiceOverdueEvent
func NewInvoiceOverdueEvent(inv *Invoice) *InvoiceOverdueEvent {
	return &InvoiceOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceOverdue, inv.ID, aggregateTypeInvoice, inv.TenantID),
		InvoiceNumber:   inv.InvoiceNumber,
		DueDate:         inv.DueDate,
		Outstanding:     inv.Outstanding(),
	}
}

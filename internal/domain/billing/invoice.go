package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/shared"
	"github.com/rentworks/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the collection status of an invoice
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING" // No payment received
	PaymentStatusPartial PaymentStatus = "PARTIAL" // 0 < received < total
	PaymentStatusPaid    PaymentStatus = "PAID"    // received >= total - tolerance
	PaymentStatusOverdue PaymentStatus = "OVERDUE" // Past due with an unsettled balance
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// CanApplyPayment returns true if payments can be applied in this status.
// OVERDUE is a time-based annotation, not a terminal state, so overdue
// invoices still accept payments.
func (s PaymentStatus) CanApplyPayment() bool {
	return s == PaymentStatusPending || s == PaymentStatusPartial || s == PaymentStatusOverdue
}

// Sweepable returns true if the overdue sweep may transition this status
func (s PaymentStatus) Sweepable() bool {
	return s == PaymentStatusPending || s == PaymentStatusPartial
}

// Invoice is the aggregate root of the tax and settlement engine. Totals are
// fixed at creation from the computed lines; only PaymentReceived and Status
// change afterwards, through RecordPayment and MarkOverdue.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber   string
	CustomerID      uuid.UUID
	CustomerName    string
	OutletID        uuid.UUID
	Region          TaxRegion
	Treatment       TaxTreatment // Regime resolved at creation, kept for audit
	InvoiceDate     time.Time
	DueDate         time.Time
	Subtotal        decimal.Decimal
	CGST            decimal.Decimal
	SGST            decimal.Decimal
	IGST            decimal.Decimal
	TotalAmount     decimal.Decimal
	PaymentReceived decimal.Decimal
	Status          PaymentStatus
	Lines           []InvoiceLine
	Remark          string
	PaidAt          *time.Time
	OverdueAt       *time.Time
}

// NewInvoice creates an invoice from already-computed lines. Totals come
// from AggregateLines; the lines are bound to the invoice. An invoice with
// no lines is a valid zero-amount draft.
func NewInvoice(
	tenantID uuid.UUID,
	invoiceNumber string,
	customerID uuid.UUID,
	customerName string,
	outletID uuid.UUID,
	region TaxRegion,
	treatment TaxTreatment,
	invoiceDate time.Time,
	dueDate time.Time,
	lines []InvoiceLine,
) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if outletID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OUTLET", "Outlet ID cannot be empty")
	}
	if !region.IsValid() {
		return nil, shared.NewDomainError("INVALID_TAX_REGION", "Tax region is not valid")
	}
	if !treatment.IsValid() {
		return nil, shared.NewDomainError("INVALID_TREATMENT", "Tax treatment is not valid")
	}
	if dueDate.Before(invoiceDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before invoice date")
	}

	totals := AggregateLines(lines)

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		OutletID:            outletID,
		Region:              region,
		Treatment:           treatment,
		InvoiceDate:         invoiceDate,
		DueDate:             dueDate,
		Subtotal:            totals.Subtotal,
		CGST:                totals.CGST,
		SGST:                totals.SGST,
		IGST:                totals.IGST,
		TotalAmount:         totals.TotalAmount,
		PaymentReceived:     decimal.Zero,
		Status:              PaymentStatusPending,
		Lines:               make([]InvoiceLine, len(lines)),
	}

	copy(inv.Lines, lines)
	for i := range inv.Lines {
		inv.Lines[i].InvoiceID = inv.ID
		if inv.Lines[i].ID == uuid.Nil {
			inv.Lines[i].ID = uuid.New()
		}
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// IsDraft returns true for a zero invoice with no lines
func (inv *Invoice) IsDraft() bool {
	return len(inv.Lines) == 0
}

// Outstanding returns the unsettled balance
func (inv *Invoice) Outstanding() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.PaymentReceived)
}

// IsSettled reports whether received payments cover the total within tolerance
func (inv *Invoice) IsSettled(tolerance decimal.Decimal) bool {
	return inv.PaymentReceived.GreaterThanOrEqual(inv.TotalAmount.Sub(tolerance))
}

// RecordPayment applies a payment against the outstanding balance. The
// tolerance absorbs rounding noise from the tax split; any amount beyond
// (outstanding + tolerance) is rejected without mutating the invoice.
// An overdue invoice is cleared to PAID only by full settlement; partial
// payments leave the overdue annotation in place.
func (inv *Invoice) RecordPayment(amount decimal.Decimal, policy TaxPolicy) error {
	if !inv.Status.CanApplyPayment() {
		return shared.NewDomainError("EXCESS_PAYMENT",
			fmt.Sprintf("Invoice %s is already settled", inv.InvoiceNumber))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(inv.Outstanding().Add(policy.SettlementTolerance)) {
		return shared.NewDomainError("EXCESS_PAYMENT",
			fmt.Sprintf("Payment amount %s exceeds outstanding balance %s beyond tolerance",
				amount.StringFixed(2), inv.Outstanding().StringFixed(2)))
	}

	wasOverdue := inv.Status == PaymentStatusOverdue
	inv.PaymentReceived = valueobject.Round2(inv.PaymentReceived.Add(amount))

	switch {
	case inv.IsSettled(policy.SettlementTolerance):
		now := time.Now()
		inv.Status = PaymentStatusPaid
		inv.PaidAt = &now
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	case wasOverdue:
		// Partial settlement does not clear the overdue annotation
	case inv.PaymentReceived.IsZero():
		inv.Status = PaymentStatusPending
	default:
		inv.Status = PaymentStatusPartial
	}

	inv.AddDomainEvent(NewInvoicePaymentRecordedEvent(inv, amount))
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// MarkOverdue transitions an unsettled invoice past its due date to OVERDUE.
// It never touches amounts and never touches PAID invoices. Returns true if
// the status changed.
func (inv *Invoice) MarkOverdue(today time.Time) bool {
	if !inv.Status.Sweepable() {
		return false
	}
	if !inv.DueDate.Before(today) {
		return false
	}

	now := time.Now()
	inv.Status = PaymentStatusOverdue
	inv.OverdueAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceOverdueEvent(inv))

	return true
}

// IsOverdue reports whether the invoice is past due with an unsettled balance
func (inv *Invoice) IsOverdue(today time.Time) bool {
	if inv.Status == PaymentStatusOverdue {
		return true
	}
	return inv.Status.Sweepable() && inv.DueDate.Before(today)
}

// SetRemark sets the remark
func (inv *Invoice) SetRemark(remark string) {
	inv.Remark = remark
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// GetTotalAmountMoney returns the total as Money
func (inv *Invoice) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(inv.TotalAmount)
}

// GetOutstandingMoney returns the unsettled balance as Money
func (inv *Invoice) GetOutstandingMoney() valueobject.Money {
	return valueobject.NewMoneyINR(inv.Outstanding())
}

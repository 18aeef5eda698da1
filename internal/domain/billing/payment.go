package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCheque:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment is one append-only ledger row against an invoice. Payments are
// never edited or deleted once recorded; corrections happen as new events
// outside this engine. The engine has no notion of payment identity beyond
// the generated ID, so de-duplication is the caller's responsibility.
type Payment struct {
	shared.BaseEntity
	TenantID        uuid.UUID
	InvoiceID       uuid.UUID
	Amount          decimal.Decimal
	Method          PaymentMethod
	PaymentDate     time.Time
	ReferenceNumber string
}

// NewPayment creates a new payment ledger row
func NewPayment(tenantID, invoiceID uuid.UUID, amount decimal.Decimal, method PaymentMethod, paymentDate time.Time, referenceNumber string) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &Payment{
		BaseEntity:      shared.NewBaseEntity(),
		TenantID:        tenantID,
		InvoiceID:       invoiceID,
		Amount:          amount,
		Method:          method,
		PaymentDate:     paymentDate,
		ReferenceNumber: referenceNumber,
	}, nil
}

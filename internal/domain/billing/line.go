package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/shared"
	"github.com/rentworks/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// LineInput is the immutable input for computing one invoice line
type LineInput struct {
	Description string
	HSNCode     string
	Quantity    int64
	UnitRate    decimal.Decimal
	// GSTRate is the tax rate in percent. Nil means the policy default applies.
	GSTRate *decimal.Decimal
}

// InvoiceLine is a computed, persisted invoice line. Its tax split is fixed
// at computation time; exactly one of {CGST+SGST} or {IGST} is non-zero
// unless the line is exempt, in which case all three are zero.
type InvoiceLine struct {
	ID           uuid.UUID
	InvoiceID    uuid.UUID
	Description  string
	HSNCode      string
	Quantity     int64
	UnitRate     decimal.Decimal
	GSTRate      decimal.Decimal // Resolved rate actually applied
	TaxableValue decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
	IGST         decimal.Decimal
	LineTotal    decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaxAmount returns the total tax on the line
func (l *InvoiceLine) TaxAmount() decimal.Decimal {
	return l.CGST.Add(l.SGST).Add(l.IGST)
}

// ComputeLine computes the taxable value and GST split for one line under
// the resolved treatment. All outputs are rounded to the currency scale and
// LineTotal is always the exact sum of the rounded components, so a single
// line carries no rounding drift.
//
// For intra-state lines the CGST and SGST halves are each rounded
// independently rather than one being derived by subtraction, keeping the
// two legs symmetric for audit purposes.
func ComputeLine(input LineInput, treatment TaxTreatment, policy TaxPolicy) (*InvoiceLine, error) {
	if !treatment.IsValid() {
		return nil, shared.NewDomainError("INVALID_TREATMENT", "Tax treatment is not valid")
	}
	if input.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}
	if input.UnitRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_RATE", "Unit rate cannot be negative")
	}

	rate := policy.DefaultGSTRate
	if input.GSTRate != nil {
		rate = *input.GSTRate
	}
	if rate.IsNegative() || rate.GreaterThan(oneHundred) {
		return nil, shared.NewDomainError("INVALID_GST_RATE", "GST rate must be between 0 and 100")
	}

	taxableValue := valueobject.Round2(input.UnitRate.Mul(decimal.NewFromInt(input.Quantity)))
	taxAmount := valueobject.Round2(taxableValue.Mul(rate).Div(oneHundred))

	var cgst, sgst, igst decimal.Decimal
	switch treatment {
	case TaxTreatmentExempt:
		cgst, sgst, igst = decimal.Zero, decimal.Zero, decimal.Zero
	case TaxTreatmentIntraState:
		half := valueobject.Round2(taxAmount.Div(decimal.NewFromInt(2)))
		cgst, sgst, igst = half, half, decimal.Zero
	case TaxTreatmentInterState:
		cgst, sgst, igst = decimal.Zero, decimal.Zero, taxAmount
	}

	now := time.Now()
	return &InvoiceLine{
		ID:           uuid.New(),
		Description:  input.Description,
		HSNCode:      input.HSNCode,
		Quantity:     input.Quantity,
		UnitRate:     input.UnitRate,
		GSTRate:      rate,
		TaxableValue: taxableValue,
		CGST:         cgst,
		SGST:         sgst,
		IGST:         igst,
		LineTotal:    valueobject.Round2(taxableValue.Add(cgst).Add(sgst).Add(igst)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// InvoiceTotals are the invoice-level aggregates derived from its lines
type InvoiceTotals struct {
	Subtotal    decimal.Decimal
	CGST        decimal.Decimal
	SGST        decimal.Decimal
	IGST        decimal.Decimal
	TotalAmount decimal.Decimal
}

// AggregateLines folds computed lines into invoice-level totals. The running
// sums are exact decimal arithmetic and each aggregate is rounded exactly
// once at the end, so the result is reproducible and independent of line
// order. An empty line list yields a zero (draft) invoice.
func AggregateLines(lines []InvoiceLine) InvoiceTotals {
	var subtotal, cgst, sgst, igst decimal.Decimal
	for i := range lines {
		subtotal = subtotal.Add(lines[i].TaxableValue)
		cgst = cgst.Add(lines[i].CGST)
		sgst = sgst.Add(lines[i].SGST)
		igst = igst.Add(lines[i].IGST)
	}

	subtotal = valueobject.Round2(subtotal)
	cgst = valueobject.Round2(cgst)
	sgst = valueobject.Round2(sgst)
	igst = valueobject.Round2(igst)

	return InvoiceTotals{
		Subtotal:    subtotal,
		CGST:        cgst,
		SGST:        sgst,
		IGST:        igst,
		TotalAmount: valueobject.Round2(subtotal.Add(cgst).Add(sgst).Add(igst)),
	}
}

package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func newTestInvoice(t *testing.T, lines []InvoiceLine) *Invoice {
	t.Helper()
	invoiceDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	inv, err := NewInvoice(
		uuid.New(),
		"INV-20260801-00001",
		uuid.New(),
		"Lakeside Events",
		uuid.New(),
		TaxRegionDomestic,
		TaxTreatmentIntraState,
		invoiceDate,
		invoiceDate.AddDate(0, 0, 15),
		lines,
	)
	require.NoError(t, err)
	return inv
}

func twoIntraStateLines(t *testing.T) []InvoiceLine {
	t.Helper()
	return []InvoiceLine{
		mustComputeLine(t, LineInput{Description: "Chair rental", Quantity: 50, UnitRate: dec("12"), GSTRate: decPtr("18")}, TaxTreatmentIntraState),
		mustComputeLine(t, LineInput{Description: "Table rental", Quantity: 20, UnitRate: dec("25"), GSTRate: decPtr("18")}, TaxTreatmentIntraState),
	}
}

// ============================================
// PaymentStatus Tests
// ============================================

func TestPaymentStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  PaymentStatus
		isValid bool
	}{
		{PaymentStatusPending, true},
		{PaymentStatusPartial, true},
		{PaymentStatusPaid, true},
		{PaymentStatusOverdue, true},
		{PaymentStatus("INVALID"), false},
		{PaymentStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestPaymentStatus_CanApplyPayment(t *testing.T) {
	assert.True(t, PaymentStatusPending.CanApplyPayment())
	assert.True(t, PaymentStatusPartial.CanApplyPayment())
	assert.True(t, PaymentStatusOverdue.CanApplyPayment())
	assert.False(t, PaymentStatusPaid.CanApplyPayment())
}

func TestPaymentStatus_Sweepable(t *testing.T) {
	assert.True(t, PaymentStatusPending.Sweepable())
	assert.True(t, PaymentStatusPartial.Sweepable())
	assert.False(t, PaymentStatusPaid.Sweepable())
	assert.False(t, PaymentStatusOverdue.Sweepable())
}

// ============================================
// NewInvoice Tests
// ============================================

func TestNewInvoice_AggregatesTotals(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))

	assertDecEqual(t, "1100.00", inv.Subtotal)
	assertDecEqual(t, "99.00", inv.CGST)
	assertDecEqual(t, "99.00", inv.SGST)
	assertDecEqual(t, "0", inv.IGST)
	assertDecEqual(t, "1298.00", inv.TotalAmount)
	assert.Equal(t, PaymentStatusPending, inv.Status)
	assert.True(t, inv.PaymentReceived.IsZero())

	// Lines are bound to the new invoice.
	for _, line := range inv.Lines {
		assert.Equal(t, inv.ID, line.InvoiceID)
	}

	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeInvoiceCreated, events[0].EventType())
}

func TestNewInvoice_TotalInvariant(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	sum := inv.Subtotal.Add(inv.CGST).Add(inv.SGST).Add(inv.IGST)
	assert.True(t, inv.TotalAmount.Equal(sum))
}

func TestNewInvoice_EmptyLinesIsDraft(t *testing.T) {
	inv := newTestInvoice(t, nil)
	assert.True(t, inv.IsDraft())
	assert.True(t, inv.TotalAmount.IsZero())
	assert.Equal(t, PaymentStatusPending, inv.Status)
}

func TestNewInvoice_Validation(t *testing.T) {
	lines := twoIntraStateLines(t)
	invoiceDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	dueDate := invoiceDate.AddDate(0, 0, 15)

	tests := []struct {
		name string
		fn   func() (*Invoice, error)
	}{
		{"empty number", func() (*Invoice, error) {
			return NewInvoice(uuid.New(), "", uuid.New(), "C", uuid.New(), TaxRegionDomestic, TaxTreatmentIntraState, invoiceDate, dueDate, lines)
		}},
		{"nil customer", func() (*Invoice, error) {
			return NewInvoice(uuid.New(), "INV-1", uuid.Nil, "C", uuid.New(), TaxRegionDomestic, TaxTreatmentIntraState, invoiceDate, dueDate, lines)
		}},
		{"empty customer name", func() (*Invoice, error) {
			return NewInvoice(uuid.New(), "INV-1", uuid.New(), "", uuid.New(), TaxRegionDomestic, TaxTreatmentIntraState, invoiceDate, dueDate, lines)
		}},
		{"nil outlet", func() (*Invoice, error) {
			return NewInvoice(uuid.New(), "INV-1", uuid.New(), "C", uuid.Nil, TaxRegionDomestic, TaxTreatmentIntraState, invoiceDate, dueDate, lines)
		}},
		{"invalid region", func() (*Invoice, error) {
			return NewInvoice(uuid.New(), "INV-1", uuid.New(), "C", uuid.New(), TaxRegion("BOGUS"), TaxTreatmentIntraState, invoiceDate, dueDate, lines)
		}},
		{"invalid treatment", func() (*Invoice, error) {
			return NewInvoice(uuid.New(), "INV-1", uuid.New(), "C", uuid.New(), TaxRegionDomestic, TaxTreatment("BOGUS"), invoiceDate, dueDate, lines)
		}},
		{"due date before invoice date", func() (*Invoice, error) {
			return NewInvoice(uuid.New(), "INV-1", uuid.New(), "C", uuid.New(), TaxRegionDomestic, TaxTreatmentIntraState, invoiceDate, invoiceDate.AddDate(0, 0, -1), lines)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			assert.Error(t, err)
		})
	}
}

// ============================================
// RecordPayment Tests
// ============================================

func TestInvoice_RecordPayment_FullSettlement(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	policy := DefaultTaxPolicy()

	err := inv.RecordPayment(dec("1298.00"), policy)
	require.NoError(t, err)

	assert.Equal(t, PaymentStatusPaid, inv.Status)
	assertDecEqual(t, "1298.00", inv.PaymentReceived)
	assert.NotNil(t, inv.PaidAt)
	assert.True(t, inv.Outstanding().IsZero())
}

func TestInvoice_RecordPayment_Partial(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	policy := DefaultTaxPolicy()

	require.NoError(t, inv.RecordPayment(dec("500"), policy))
	assert.Equal(t, PaymentStatusPartial, inv.Status)
	assertDecEqual(t, "500.00", inv.PaymentReceived)

	require.NoError(t, inv.RecordPayment(dec("798.00"), policy))
	assert.Equal(t, PaymentStatusPaid, inv.Status)
}

func TestInvoice_RecordPayment_ExcessOnSettled(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	policy := DefaultTaxPolicy()

	require.NoError(t, inv.RecordPayment(dec("1298.00"), policy))
	require.Equal(t, PaymentStatusPaid, inv.Status)

	err := inv.RecordPayment(dec("0.01"), policy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settled")
	// Rejection leaves the invoice untouched.
	assert.Equal(t, PaymentStatusPaid, inv.Status)
	assertDecEqual(t, "1298.00", inv.PaymentReceived)
}

func TestInvoice_RecordPayment_ExcessBeyondTolerance(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	policy := DefaultTaxPolicy()

	received := inv.PaymentReceived
	status := inv.Status
	version := inv.Version

	err := inv.RecordPayment(dec("1298.02"), policy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds outstanding")

	// No mutation on rejection.
	assert.True(t, inv.PaymentReceived.Equal(received))
	assert.Equal(t, status, inv.Status)
	assert.Equal(t, version, inv.Version)
}

func TestInvoice_RecordPayment_ToleranceAbsorbsRoundingNoise(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	policy := DefaultTaxPolicy()

	// One paisa over the outstanding balance is within tolerance.
	err := inv.RecordPayment(dec("1298.01"), policy)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, inv.Status)
}

func TestInvoice_RecordPayment_NeverExceedsTotalPlusTolerance(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	policy := DefaultTaxPolicy()

	require.NoError(t, inv.RecordPayment(dec("1000"), policy))
	require.NoError(t, inv.RecordPayment(dec("298.01"), policy))

	limit := inv.TotalAmount.Add(policy.SettlementTolerance)
	assert.True(t, inv.PaymentReceived.LessThanOrEqual(limit))
	assert.Equal(t, PaymentStatusPaid, inv.Status)
}

func TestInvoice_RecordPayment_RejectsNonPositive(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	policy := DefaultTaxPolicy()

	assert.Error(t, inv.RecordPayment(dec("0"), policy))
	assert.Error(t, inv.RecordPayment(dec("-10"), policy))
	assert.Equal(t, PaymentStatusPending, inv.Status)
}

func TestInvoice_RecordPayment_PartialKeepsOverdue(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	policy := DefaultTaxPolicy()

	require.True(t, inv.MarkOverdue(inv.DueDate.AddDate(0, 0, 1)))
	require.Equal(t, PaymentStatusOverdue, inv.Status)

	// A partial payment does not clear the overdue annotation.
	require.NoError(t, inv.RecordPayment(dec("100"), policy))
	assert.Equal(t, PaymentStatusOverdue, inv.Status)

	// Full settlement does.
	require.NoError(t, inv.RecordPayment(dec("1198.00"), policy))
	assert.Equal(t, PaymentStatusPaid, inv.Status)
}

// ============================================
// MarkOverdue Tests
// ============================================

func TestInvoice_MarkOverdue(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	dayAfterDue := inv.DueDate.AddDate(0, 0, 1)

	changed := inv.MarkOverdue(dayAfterDue)
	assert.True(t, changed)
	assert.Equal(t, PaymentStatusOverdue, inv.Status)
	assert.NotNil(t, inv.OverdueAt)

	// A second sweep on the same data is a no-op.
	changed = inv.MarkOverdue(dayAfterDue)
	assert.False(t, changed)
}

func TestInvoice_MarkOverdue_NotYetDue(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))

	assert.False(t, inv.MarkOverdue(inv.DueDate))
	assert.False(t, inv.MarkOverdue(inv.DueDate.AddDate(0, 0, -1)))
	assert.Equal(t, PaymentStatusPending, inv.Status)
}

func TestInvoice_MarkOverdue_NeverTouchesPaid(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	require.NoError(t, inv.RecordPayment(dec("1298.00"), DefaultTaxPolicy()))

	assert.False(t, inv.MarkOverdue(inv.DueDate.AddDate(0, 0, 30)))
	assert.Equal(t, PaymentStatusPaid, inv.Status)
}

func TestInvoice_MarkOverdue_NeverTouchesAmounts(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	require.NoError(t, inv.RecordPayment(dec("100"), DefaultTaxPolicy()))

	total := inv.TotalAmount
	received := inv.PaymentReceived

	require.True(t, inv.MarkOverdue(inv.DueDate.AddDate(0, 0, 1)))
	assert.True(t, inv.TotalAmount.Equal(total))
	assert.True(t, inv.PaymentReceived.Equal(received))
}

func TestInvoice_IsOverdue(t *testing.T) {
	inv := newTestInvoice(t, twoIntraStateLines(t))
	assert.False(t, inv.IsOverdue(inv.DueDate))
	assert.True(t, inv.IsOverdue(inv.DueDate.AddDate(0, 0, 1)))

	require.NoError(t, inv.RecordPayment(dec("1298.00"), DefaultTaxPolicy()))
	assert.False(t, inv.IsOverdue(inv.DueDate.AddDate(0, 0, 1)))
}

// ============================================
// Payment Entity Tests
// ============================================

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(uuid.New(), uuid.New(), dec("500"), PaymentMethodUPI, time.Now(), "UTR123456")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assertDecEqual(t, "500", p.Amount)
	assert.Equal(t, "UTR123456", p.ReferenceNumber)
}

func TestNewPayment_Validation(t *testing.T) {
	_, err := NewPayment(uuid.New(), uuid.Nil, dec("500"), PaymentMethodCash, time.Now(), "")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.New(), dec("0"), PaymentMethodCash, time.Now(), "")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.New(), dec("-1"), PaymentMethodCash, time.Now(), "")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.New(), dec("1"), PaymentMethod("BARTER"), time.Now(), "")
	assert.Error(t, err)
}

func TestNewPayment_DefaultsDateWhenZero(t *testing.T) {
	p, err := NewPayment(uuid.New(), uuid.New(), dec("1"), PaymentMethodCash, time.Time{}, "")
	require.NoError(t, err)
	assert.False(t, p.PaymentDate.IsZero())
}

package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/billing"
	"github.com/rentworks/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The settlement write path commits the payment row and the invoice update
// together; if either fails, neither persists.
func TestDatabase_WithinTx_RollsBackBothWrites(t *testing.T) {
	db := setupTestDB(t)
	database := &Database{DB: db}
	invoiceRepo := NewGormInvoiceRepository(db)
	paymentRepo := NewGormPaymentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	policy := billing.DefaultTaxPolicy()

	invoice := makeInvoice(t, tenantID, "INV-20260115-00001", time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, invoiceRepo.Save(ctx, invoice))

	boom := errors.New("forced failure")
	err := database.WithinTx(ctx, func(txCtx context.Context) error {
		loaded, err := invoiceRepo.FindByIDForTenant(txCtx, tenantID, invoice.ID)
		if err != nil {
			return err
		}
		if err := loaded.RecordPayment(dec("500.00"), policy); err != nil {
			return err
		}
		payment, err := billing.NewPayment(tenantID, loaded.ID, dec("500.00"), billing.PaymentMethodCash, time.Now(), "")
		if err != nil {
			return err
		}
		if err := paymentRepo.Save(txCtx, payment); err != nil {
			return err
		}
		if err := invoiceRepo.SaveWithLock(txCtx, loaded); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// Neither the ledger row nor the invoice update survived
	payments, err := paymentRepo.FindByInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	stored, err := invoiceRepo.FindByIDForTenant(ctx, tenantID, invoice.ID)
	require.NoError(t, err)
	assert.True(t, stored.PaymentReceived.IsZero())
	assert.Equal(t, billing.PaymentStatusPending, stored.Status)
}

func TestDatabase_WithinTx_CommitsOnSuccess(t *testing.T) {
	db := setupTestDB(t)
	database := &Database{DB: db}
	invoiceRepo := NewGormInvoiceRepository(db)
	paymentRepo := NewGormPaymentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	policy := billing.DefaultTaxPolicy()

	invoice := makeInvoice(t, tenantID, "INV-20260115-00001", time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, invoiceRepo.Save(ctx, invoice))

	err := database.WithinTx(ctx, func(txCtx context.Context) error {
		loaded, err := invoiceRepo.FindByIDForTenant(txCtx, tenantID, invoice.ID)
		if err != nil {
			return err
		}
		if err := loaded.RecordPayment(loaded.TotalAmount, policy); err != nil {
			return err
		}
		payment, err := billing.NewPayment(tenantID, loaded.ID, loaded.TotalAmount, billing.PaymentMethodUPI, time.Now(), "")
		if err != nil {
			return err
		}
		if err := paymentRepo.Save(txCtx, payment); err != nil {
			return err
		}
		return invoiceRepo.SaveWithLock(txCtx, loaded)
	})
	require.NoError(t, err)

	stored, err := invoiceRepo.FindByIDForTenant(ctx, tenantID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.PaymentStatusPaid, stored.Status)

	sum, err := paymentRepo.SumByInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(invoice.TotalAmount))
}

// Database satisfies shared.TxManager so application services can stay
// ignorant of GORM.
func TestDatabase_ImplementsTxManager(t *testing.T) {
	var _ shared.TxManager = &Database{}
}

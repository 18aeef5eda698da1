package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/billing"
	"github.com/rentworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxSettlementRetries bounds reloads after an optimistic lock conflict
const maxSettlementRetries = 3

// PaymentService applies payments against invoices. The payment ledger row
// and the invoice balance/status update are committed in one transaction,
// and concurrent settlements against the same invoice serialize on the
// invoice's aggregate version.
type PaymentService struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
	txManager   shared.TxManager
	policy      billing.TaxPolicy
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	txManager shared.TxManager,
	policy billing.TaxPolicy,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		policy:      policy,
		logger:      logger,
	}
}

// RecordPaymentRequest carries the inputs for recording one payment
type RecordPaymentRequest struct {
	TenantID        uuid.UUID
	InvoiceID       uuid.UUID
	Amount          decimal.Decimal
	Method          billing.PaymentMethod
	PaymentDate     time.Time
	ReferenceNumber string
}

// RecordPayment validates and applies a payment, returning the updated
// invoice. On an optimistic lock conflict the invoice is reloaded and the
// excess-payment check re-runs against the fresh balance, so two concurrent
// payments can never both pass the check on a stale balance.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*billing.Invoice, error) {
	var lastErr error
	for attempt := 0; attempt < maxSettlementRetries; attempt++ {
		invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, req.TenantID, req.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to load invoice: %w", err)
		}

		if err := invoice.RecordPayment(req.Amount, s.policy); err != nil {
			return nil, err
		}

		payment, err := billing.NewPayment(req.TenantID, invoice.ID, req.Amount, req.Method, req.PaymentDate, req.ReferenceNumber)
		if err != nil {
			return nil, err
		}

		err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
			if err := s.paymentRepo.Save(txCtx, payment); err != nil {
				return err
			}
			return s.invoiceRepo.SaveWithLock(txCtx, invoice)
		})
		if err == nil {
			publishEvents(s.logger, invoice)
			s.logger.Info("payment recorded",
				zap.String("invoice_number", invoice.InvoiceNumber),
				zap.String("amount", req.Amount.StringFixed(2)),
				zap.String("status", invoice.Status.String()),
			)
			return invoice, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, fmt.Errorf("failed to persist payment: %w", err)
		}

		lastErr = err
		s.logger.Warn("payment settlement conflict, retrying",
			zap.String("invoice_id", req.InvoiceID.String()),
			zap.Int("attempt", attempt+1),
		)
	}
	return nil, lastErr
}

// ListPayments returns the payment ledger of an invoice, oldest first
func (s *PaymentService) ListPayments(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]billing.Payment, error) {
	// Load through the invoice so tenant scoping applies.
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.paymentRepo.FindByInvoice(ctx, invoice.ID)
}

package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/billing"
	"go.uber.org/zap"
)

// sweepBatchSize caps how many invoices one sweep pass loads at a time
const sweepBatchSize = 500

// OverdueService runs the batch overdue sweep. It only ever writes the
// OVERDUE status, never amounts, and its writes are guarded so a concurrent
// settlement to PAID is never overwritten.
type OverdueService struct {
	invoiceRepo billing.InvoiceRepository
	logger      *zap.Logger
}

// NewOverdueService creates a new OverdueService
func NewOverdueService(invoiceRepo billing.InvoiceRepository, logger *zap.Logger) *OverdueService {
	return &OverdueService{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// SweepResult reports the outcome of one sweep run
type SweepResult struct {
	ScannedCount int `json:"scanned_count"`
	UpdatedCount int `json:"updated_count"`
}

// Sweep transitions every invoice past its due date with an unsettled
// balance to OVERDUE. A failure on one invoice is logged and does not abort
// the batch. The operation is idempotent: a second run over unchanged data
// updates nothing.
func (s *OverdueService) Sweep(ctx context.Context, today time.Time) (SweepResult, error) {
	var result SweepResult

	// Rows that fail to write stay due, so later reads would return them
	// again. They are excluded from the query instead, which lets the sweep
	// page past a failing stretch and still reach the rest of the queue.
	var failedIDs []uuid.UUID

	for {
		candidates, err := s.invoiceRepo.FindDueForSweep(ctx, today, sweepBatchSize, failedIDs)
		if err != nil {
			return result, err
		}
		if len(candidates) == 0 {
			break
		}
		result.ScannedCount += len(candidates)

		batchUpdated := 0
		batchFailed := 0
		for i := range candidates {
			invoice := &candidates[i]
			if !invoice.MarkOverdue(today) {
				continue
			}

			// The repository re-checks the status at write time; a row that
			// was settled between the read and the write stays untouched.
			updated, err := s.invoiceRepo.TransitionToOverdue(ctx, invoice.ID, *invoice.OverdueAt)
			if err != nil {
				s.logger.Error("overdue transition failed",
					zap.String("invoice_id", invoice.ID.String()),
					zap.String("invoice_number", invoice.InvoiceNumber),
					zap.Error(err),
				)
				failedIDs = append(failedIDs, invoice.ID)
				batchFailed++
				continue
			}
			if updated {
				publishEvents(s.logger, invoice)
				batchUpdated++
			}
		}
		result.UpdatedCount += batchUpdated

		if len(candidates) < sweepBatchSize {
			break
		}
		// A full batch where nothing was written and nothing was newly
		// excluded would be re-read forever.
		if batchUpdated == 0 && batchFailed == 0 {
			break
		}
	}

	s.logger.Info("overdue sweep finished",
		zap.Time("as_of", today),
		zap.Int("scanned", result.ScannedCount),
		zap.Int("updated", result.UpdatedCount),
	)

	return result, nil
}

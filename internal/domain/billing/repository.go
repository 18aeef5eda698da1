package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceFilter holds query options for listing invoices
type InvoiceFilter struct {
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
	Search     string
	CustomerID *uuid.UUID
	OutletID   *uuid.UUID
	Status     *PaymentStatus
	FromDate   *time.Time
	ToDate     *time.Time
	DueFrom    *time.Time
	DueTo      *time.Time
	Overdue    *bool
}

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*Invoice, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) (int64, error)

	// FindDueForSweep returns invoices across all tenants with a due date
	// before asOf and a sweepable (PENDING/PARTIAL) status. IDs in excludeIDs
	// are skipped so a sweep can page past rows it already failed to write.
	FindDueForSweep(ctx context.Context, asOf time.Time, limit int, excludeIDs []uuid.UUID) ([]Invoice, error)

	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock updates the invoice guarded by its aggregate version.
	// Returns shared.ErrConcurrencyConflict when another transaction won.
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// TransitionToOverdue flips the status to OVERDUE only if it is still
	// sweepable at write time, so a concurrent settlement is never
	// overwritten. Returns true if a row was updated.
	TransitionToOverdue(ctx context.Context, id uuid.UUID, overdueAt time.Time) (bool, error)

	SumOutstandingForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
	NextInvoiceNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// PaymentRepository defines persistence operations for the payment ledger.
// Rows are append-only; there is no update or delete.
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)
	SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)
}

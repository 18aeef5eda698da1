package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/billing"
	"github.com/rentworks/backend/internal/domain/partner"
	"github.com/rentworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceService orchestrates invoice creation: classification, line tax
// computation, aggregation and atomic persistence.
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
	outletRepo   partner.OutletRepository
	txManager    shared.TxManager
	policy       billing.TaxPolicy
	logger       *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	outletRepo partner.OutletRepository,
	txManager shared.TxManager,
	policy billing.TaxPolicy,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		outletRepo:   outletRepo,
		txManager:    txManager,
		policy:       policy,
		logger:       logger,
	}
}

// CreateInvoiceRequest carries the inputs for invoice creation
type CreateInvoiceRequest struct {
	TenantID    uuid.UUID
	CustomerID  uuid.UUID
	OutletID    uuid.UUID
	InvoiceDate time.Time
	// DueDate zero means the customer's default payment terms apply.
	DueDate time.Time
	// Region overrides the region derived from the customer's GST
	// classification, e.g. an explicit export invoice.
	Region *billing.TaxRegion
	Lines  []billing.LineInput
	Remark string
}

// CreateInvoice computes and persists a new invoice. Validation and
// jurisdiction errors are returned before anything is written; an invoice is
// never stored half-computed.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*billing.Invoice, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, req.TenantID, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Cannot invoice an inactive customer")
	}

	outlet, err := s.outletRepo.FindByIDForTenant(ctx, req.TenantID, req.OutletID)
	if err != nil {
		return nil, fmt.Errorf("failed to load outlet: %w", err)
	}

	region := regionForClassification(customer.GSTClass)
	if req.Region != nil {
		region = *req.Region
	}

	treatment, err := s.policy.ResolveTreatment(outlet.Jurisdiction, customer.Jurisdiction, region)
	if err != nil {
		return nil, err
	}

	lines := make([]billing.InvoiceLine, 0, len(req.Lines))
	for _, input := range req.Lines {
		line, err := billing.ComputeLine(input, treatment, s.policy)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	invoiceDate := req.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}
	dueDate := req.DueDate
	if dueDate.IsZero() {
		dueDate = invoiceDate.AddDate(0, 0, customer.DefaultDueDays)
	}

	// Two concurrent creates can draw the same number; the unique index
	// rejects the loser, who draws again once before giving up.
	var invoice *billing.Invoice
	for attempt := 0; ; attempt++ {
		number, err := s.invoiceRepo.NextInvoiceNumber(ctx, req.TenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate invoice number: %w", err)
		}

		invoice, err = billing.NewInvoice(
			req.TenantID,
			number,
			customer.ID,
			customer.Name,
			outlet.ID,
			region,
			treatment,
			invoiceDate,
			dueDate,
			lines,
		)
		if err != nil {
			return nil, err
		}
		if req.Remark != "" {
			invoice.SetRemark(req.Remark)
		}

		err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
			return s.invoiceRepo.Save(txCtx, invoice)
		})
		if err == nil {
			break
		}
		if errors.Is(err, shared.ErrAlreadyExists) {
			if attempt == 0 {
				s.logger.Warn("invoice number collision, regenerating",
					zap.String("invoice_number", number),
					zap.String("tenant_id", req.TenantID.String()),
				)
				continue
			}
			return nil, shared.NewDomainError("CONCURRENCY_CONFLICT",
				"Invoice number allocation conflicted with a concurrent create, retry the request")
		}
		return nil, fmt.Errorf("failed to persist invoice: %w", err)
	}

	publishEvents(s.logger, invoice)
	s.logger.Info("invoice created",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("treatment", treatment.String()),
		zap.String("total_amount", invoice.TotalAmount.StringFixed(2)),
	)

	return invoice, nil
}

// GetInvoice loads a single invoice with its lines
func (s *InvoiceService) GetInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (*billing.Invoice, error) {
	return s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
}

// ListInvoices returns a page of invoices for a tenant
func (s *InvoiceService) ListInvoices(ctx context.Context, tenantID uuid.UUID, filter billing.InvoiceFilter) (shared.Paginated[billing.Invoice], error) {
	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[billing.Invoice]{}, err
	}
	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[billing.Invoice]{}, err
	}

	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return shared.NewPaginated(invoices, total, page, pageSize), nil
}

// regionForClassification derives the default tax region from how the
// customer is classified for GST.
func regionForClassification(class partner.GSTClassification) billing.TaxRegion {
	switch class {
	case partner.GSTClassificationSEZ:
		return billing.TaxRegionSEZ
	case partner.GSTClassificationOverseas:
		return billing.TaxRegionExport
	default:
		return billing.TaxRegionDomestic
	}
}

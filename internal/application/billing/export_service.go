package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/billing"
	"github.com/rentworks/backend/internal/domain/partner"
	"go.uber.org/zap"
)

// ExportService builds the flat GST filing report. Export-region invoices
// are reported with their tax redistributed back onto the lines so the
// zero-rated rows still carry the rate that applied.
type ExportService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// GSTReportRequest bounds the report by issue date, inclusive on both ends
type GSTReportRequest struct {
	TenantID uuid.UUID
	FromDate time.Time
	ToDate   time.Time
}

// BuildGSTReport returns one row per invoice line for every invoice issued
// in the requested window, in invoice-number order.
func (s *ExportService) BuildGSTReport(ctx context.Context, req GSTReportRequest) ([]billing.GSTReportRow, error) {
	filter := billing.InvoiceFilter{
		FromDate: &req.FromDate,
		ToDate:   &req.ToDate,
		OrderBy:  "invoice_number",
		OrderDir: "asc",
	}
	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, req.TenantID, filter)
	if err != nil {
		return nil, err
	}

	gstins := make(map[uuid.UUID]string)
	rows := make([]billing.GSTReportRow, 0, len(invoices))
	for i := range invoices {
		invoice := &invoices[i]

		gstin, ok := gstins[invoice.CustomerID]
		if !ok {
			customer, err := s.customerRepo.FindByIDForTenant(ctx, req.TenantID, invoice.CustomerID)
			if err != nil {
				// Report what we have rather than fail the whole filing.
				s.logger.Warn("customer lookup failed for GST report",
					zap.String("invoice_number", invoice.InvoiceNumber),
					zap.String("customer_id", invoice.CustomerID.String()),
					zap.Error(err),
				)
			} else {
				gstin = customer.GSTIN
			}
			gstins[invoice.CustomerID] = gstin
		}

		rows = append(rows, billing.BuildReportRows(invoice, gstin)...)
	}

	return rows, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/billing"
	"github.com/rentworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for billing.Invoice
type InvoiceModel struct {
	TenantAggregateModel
	InvoiceNumber   string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	CustomerID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	CustomerName    string                `gorm:"type:varchar(200);not null"`
	OutletID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	Region          billing.TaxRegion     `gorm:"type:varchar(20);not null"`
	Treatment       billing.TaxTreatment  `gorm:"type:varchar(20);not null"`
	InvoiceDate     time.Time             `gorm:"not null;index"`
	DueDate         time.Time             `gorm:"not null;index"`
	Subtotal        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	CGST            decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	SGST            decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	IGST            decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	TotalAmount     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	PaymentReceived decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status          billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Remark          string                `gorm:"type:text"`
	PaidAt          *time.Time
	OverdueAt       *time.Time
	Lines           []InvoiceLineModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceLineModel is the persistence model for billing.InvoiceLine.
// Lines are immutable once the invoice is created.
type InvoiceLineModel struct {
	BaseModel
	InvoiceID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description  string          `gorm:"type:varchar(500);not null"`
	HSNCode      string          `gorm:"type:varchar(20)"`
	Quantity     int64           `gorm:"not null"`
	UnitRate     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GSTRate      decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	TaxableValue decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CGST         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SGST         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IGST         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain Invoice aggregate
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		InvoiceNumber:   m.InvoiceNumber,
		CustomerID:      m.CustomerID,
		CustomerName:    m.CustomerName,
		OutletID:        m.OutletID,
		Region:          m.Region,
		Treatment:       m.Treatment,
		InvoiceDate:     m.InvoiceDate,
		DueDate:         m.DueDate,
		Subtotal:        m.Subtotal,
		CGST:            m.CGST,
		SGST:            m.SGST,
		IGST:            m.IGST,
		TotalAmount:     m.TotalAmount,
		PaymentReceived: m.PaymentReceived,
		Status:          m.Status,
		Remark:          m.Remark,
		PaidAt:          m.PaidAt,
		OverdueAt:       m.OverdueAt,
	}
	m.PopulateTenantAggregateRoot(&inv.TenantAggregateRoot)

	inv.Lines = make([]billing.InvoiceLine, len(m.Lines))
	for i, lm := range m.Lines {
		inv.Lines[i] = *lm.ToDomain()
	}
	return inv
}

// ToDomain converts the persistence model to a domain InvoiceLine
func (m *InvoiceLineModel) ToDomain() *billing.InvoiceLine {
	return &billing.InvoiceLine{
		ID:           m.ID,
		InvoiceID:    m.InvoiceID,
		Description:  m.Description,
		HSNCode:      m.HSNCode,
		Quantity:     m.Quantity,
		UnitRate:     m.UnitRate,
		GSTRate:      m.GSTRate,
		TaxableValue: m.TaxableValue,
		CGST:         m.CGST,
		SGST:         m.SGST,
		IGST:         m.IGST,
		LineTotal:    m.LineTotal,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// InvoiceModelFromDomain converts a domain Invoice to the persistence model
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		OutletID:        inv.OutletID,
		Region:          inv.Region,
		Treatment:       inv.Treatment,
		InvoiceDate:     inv.InvoiceDate,
		DueDate:         inv.DueDate,
		Subtotal:        inv.Subtotal,
		CGST:            inv.CGST,
		SGST:            inv.SGST,
		IGST:            inv.IGST,
		TotalAmount:     inv.TotalAmount,
		PaymentReceived: inv.PaymentReceived,
		Status:          inv.Status,
		Remark:          inv.Remark,
		PaidAt:          inv.PaidAt,
		OverdueAt:       inv.OverdueAt,
	}
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)

	m.Lines = make([]InvoiceLineModel, len(inv.Lines))
	for i := range inv.Lines {
		m.Lines[i] = *InvoiceLineModelFromDomain(&inv.Lines[i])
	}
	return m
}

// InvoiceLineModelFromDomain converts a domain InvoiceLine to the persistence model
func InvoiceLineModelFromDomain(line *billing.InvoiceLine) *InvoiceLineModel {
	return &InvoiceLineModel{
		BaseModel: BaseModel{
			ID:        line.ID,
			CreatedAt: line.CreatedAt,
			UpdatedAt: line.UpdatedAt,
		},
		InvoiceID:    line.InvoiceID,
		Description:  line.Description,
		HSNCode:      line.HSNCode,
		Quantity:     line.Quantity,
		UnitRate:     line.UnitRate,
		GSTRate:      line.GSTRate,
		TaxableValue: line.TaxableValue,
		CGST:         line.CGST,
		SGST:         line.SGST,
		IGST:         line.IGST,
		LineTotal:    line.LineTotal,
	}
}

// PaymentModel is the persistence model for billing.Payment.
// The ledger is append-only; rows are never updated or deleted.
type PaymentModel struct {
	BaseModel
	TenantID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	InvoiceID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Method          billing.PaymentMethod `gorm:"type:varchar(20);not null"`
	PaymentDate     time.Time             `gorm:"not null;index"`
	ReferenceNumber string                `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID:        m.TenantID,
		InvoiceID:       m.InvoiceID,
		Amount:          m.Amount,
		Method:          m.Method,
		PaymentDate:     m.PaymentDate,
		ReferenceNumber: m.ReferenceNumber,
	}
}

// PaymentModelFromDomain converts a domain Payment to the persistence model
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{
		TenantID:        p.TenantID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		Method:          p.Method,
		PaymentDate:     p.PaymentDate,
		ReferenceNumber: p.ReferenceNumber,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	billingapp "github.com/rentworks/backend/internal/application/billing"
	"github.com/rentworks/backend/internal/domain/billing"
	"github.com/rentworks/backend/internal/interfaces/http/dto"
)

const dateLayout = "2006-01-02"

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateInvoiceLineRequest represents one line of a new invoice
type CreateInvoiceLineRequest struct {
	Description string           `json:"description" binding:"required,min=1,max=500"`
	HSNCode     string           `json:"hsn_code" binding:"max=20"`
	Quantity    int64            `json:"quantity" binding:"required,min=1"`
	UnitRate    decimal.Decimal  `json:"unit_rate" binding:"required"`
	GSTRate     *decimal.Decimal `json:"gst_rate"`
}

// CreateInvoiceRequest represents a request to create a new invoice
type CreateInvoiceRequest struct {
	CustomerID  string                     `json:"customer_id" binding:"required,uuid"`
	OutletID    string                     `json:"outlet_id" binding:"required,uuid"`
	InvoiceDate string                     `json:"invoice_date" binding:"required,datetime=2006-01-02"`
	DueDate     string                     `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Region      string                     `json:"region" binding:"omitempty,oneof=DOMESTIC SEZ EXPORT"`
	Lines       []CreateInvoiceLineRequest `json:"lines" binding:"dive"`
	Remark      string                     `json:"remark" binding:"max=1000"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ID           uuid.UUID       `json:"id"`
	Description  string          `json:"description"`
	HSNCode      string          `json:"hsn_code"`
	Quantity     int64           `json:"quantity"`
	UnitRate     decimal.Decimal `json:"unit_rate"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID              uuid.UUID             `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	CustomerID      uuid.UUID             `json:"customer_id"`
	CustomerName    string                `json:"customer_name"`
	OutletID        uuid.UUID             `json:"outlet_id"`
	Region          string                `json:"region"`
	Treatment       string                `json:"treatment"`
	InvoiceDate     time.Time             `json:"invoice_date"`
	DueDate         time.Time             `json:"due_date"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	CGST            decimal.Decimal       `json:"cgst"`
	SGST            decimal.Decimal       `json:"sgst"`
	IGST            decimal.Decimal       `json:"igst"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	PaymentReceived decimal.Decimal       `json:"payment_received"`
	Outstanding     decimal.Decimal       `json:"outstanding"`
	Status          string                `json:"status"`
	Remark          string                `json:"remark,omitempty"`
	PaidAt          *time.Time            `json:"paid_at,omitempty"`
	OverdueAt       *time.Time            `json:"overdue_at,omitempty"`
	Lines           []InvoiceLineResponse `json:"lines"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		lines = append(lines, InvoiceLineResponse{
			ID:           line.ID,
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
		})
	}

	return InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		OutletID:        inv.OutletID,
		Region:          inv.Region.String(),
		Treatment:       inv.Treatment.String(),
		InvoiceDate:     inv.InvoiceDate,
		DueDate:         inv.DueDate,
		Subtotal:        inv.Subtotal,
		CGST:            inv.CGST,
		SGST:            inv.SGST,
		IGST:            inv.IGST,
		TotalAmount:     inv.TotalAmount,
		PaymentReceived: inv.PaymentReceived,
		Outstanding:     inv.TotalAmount.Sub(inv.PaymentReceived),
		Status:          string(inv.Status),
		Remark:          inv.Remark,
		PaidAt:          inv.PaidAt,
		OverdueAt:       inv.OverdueAt,
		Lines:           lines,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

// Create handles POST /billing/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoiceDate, _ := time.Parse(dateLayout, req.InvoiceDate)
	var dueDate time.Time
	if req.DueDate != "" {
		dueDate, _ = time.Parse(dateLayout, req.DueDate)
	}

	var region *billing.TaxRegion
	if req.Region != "" {
		r := billing.TaxRegion(req.Region)
		region = &r
	}

	lines := make([]billing.LineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, billing.LineInput{
			Description: l.Description,
			HSNCode:     l.HSNCode,
			Quantity:    l.Quantity,
			UnitRate:    l.UnitRate,
			GSTRate:     l.GSTRate,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), billingapp.CreateInvoiceRequest{
		TenantID:    tenantID,
		CustomerID:  uuid.MustParse(req.CustomerID),
		OutletID:    uuid.MustParse(req.OutletID),
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Region:      region,
		Lines:       lines,
		Remark:      req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ToInvoiceResponse(invoice))
}

// Get handles GET /billing/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), tenantID, uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToInvoiceResponse(invoice))
}

// ListInvoicesRequest holds query parameters for listing invoices
type ListInvoicesRequest struct {
	dto.ListRequest
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	OutletID   string `form:"outlet_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING PARTIAL PAID OVERDUE"`
	FromDate   string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate     string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
	Overdue    *bool  `form:"overdue"`
}

// List handles GET /billing/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.ApplyDefaults()

	filter := billing.InvoiceFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Overdue:  req.Overdue,
	}
	if req.CustomerID != "" {
		id := uuid.MustParse(req.CustomerID)
		filter.CustomerID = &id
	}
	if req.OutletID != "" {
		id := uuid.MustParse(req.OutletID)
		filter.OutletID = &id
	}
	if req.Status != "" {
		status := billing.PaymentStatus(req.Status)
		filter.Status = &status
	}
	if req.FromDate != "" {
		from, _ := time.Parse(dateLayout, req.FromDate)
		filter.FromDate = &from
	}
	if req.ToDate != "" {
		to, _ := time.Parse(dateLayout, req.ToDate)
		filter.ToDate = &to
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]InvoiceResponse, 0, len(result.Items))
	for i := range result.Items {
		responses = append(responses, ToInvoiceResponse(&result.Items[i]))
	}

	h.SuccessWithMeta(c, responses, result.Total, result.Page, result.PageSize)
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/billing/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.Get)
	}
}

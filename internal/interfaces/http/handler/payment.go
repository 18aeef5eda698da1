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

// PaymentHandler handles payment-related API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Method          string          `json:"method" binding:"required,oneof=CASH UPI CARD BANK_TRANSFER CHEQUE"`
	PaymentDate     string          `json:"payment_date" binding:"required,datetime=2006-01-02"`
	ReferenceNumber string          `json:"reference_number" binding:"max=100"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	PaymentDate     time.Time       `json:"payment_date"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		Method:          string(p.Method),
		PaymentDate:     p.PaymentDate,
		ReferenceNumber: p.ReferenceNumber,
		CreatedAt:       p.CreatedAt,
	}
}

// Record handles POST /billing/invoices/:id/payments
func (h *PaymentHandler) Record(c *gin.Context) {
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

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	paymentDate, _ := time.Parse(dateLayout, req.PaymentDate)

	invoice, err := h.paymentService.RecordPayment(c.Request.Context(), billingapp.RecordPaymentRequest{
		TenantID:        tenantID,
		InvoiceID:       uuid.MustParse(idReq.ID),
		Amount:          req.Amount,
		Method:          billing.PaymentMethod(req.Method),
		PaymentDate:     paymentDate,
		ReferenceNumber: req.ReferenceNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ToInvoiceResponse(invoice))
}

// List handles GET /billing/invoices/:id/payments
func (h *PaymentHandler) List(c *gin.Context) {
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

	payments, err := h.paymentService.ListPayments(c.Request.Context(), tenantID, uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}

	h.Success(c, responses)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/billing/invoices/:id/payments")
	{
		payments.POST("", h.Record)
		payments.GET("", h.List)
	}
}

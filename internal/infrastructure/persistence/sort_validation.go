package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Anything that is not "desc" sorts ascending.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "desc") {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates a caller-supplied sort field against a
// whitelist of sortable columns. The field reaches the SQL ORDER BY clause
// verbatim, so anything not whitelisted falls back to defaultField.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"invoice_number":   true,
	"customer_id":      true,
	"customer_name":    true,
	"outlet_id":        true,
	"invoice_date":     true,
	"due_date":         true,
	"subtotal":         true,
	"cgst":             true,
	"sgst":             true,
	"igst":             true,
	"total_amount":     true,
	"payment_received": true,
	"status":           true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"code":             true,
	"name":             true,
	"status":           true,
	"jurisdiction":     true,
	"gstin":            true,
	"gst_class":        true,
	"credit_limit":     true,
	"default_due_days": true,
}

// OutletSortFields contains allowed sort fields for outlets
var OutletSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"code":         true,
	"name":         true,
	"jurisdiction": true,
	"active":       true,
}

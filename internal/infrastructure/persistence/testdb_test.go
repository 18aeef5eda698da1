package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/billing"
	"github.com/rentworks/backend/internal/domain/partner"
	"github.com/rentworks/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&partner.Customer{},
		&partner.Outlet{},
		&models.InvoiceModel{},
		&models.InvoiceLineModel{},
		&models.PaymentModel{},
	)
	require.NoError(t, err)

	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// makeInvoice builds an intra-state invoice totalling 708.00 due on the
// given date.
func makeInvoice(t *testing.T, tenantID uuid.UUID, number string, dueDate time.Time) *billing.Invoice {
	t.Helper()
	policy := billing.DefaultTaxPolicy()
	line, err := billing.ComputeLine(billing.LineInput{
		Description: "Camera rental",
		HSNCode:     "9973",
		Quantity:    2,
		UnitRate:    dec("300.00"),
	}, billing.TaxTreatmentIntraState, policy)
	require.NoError(t, err)

	inv, err := billing.NewInvoice(
		tenantID,
		number,
		uuid.New(),
		"Sharma Rentals",
		uuid.New(),
		billing.TaxRegionDomestic,
		billing.TaxTreatmentIntraState,
		dueDate.AddDate(0, 0, -15),
		dueDate,
		[]billing.InvoiceLine{*line},
	)
	require.NoError(t, err)
	return inv
}

package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rentworks/backend/internal/domain/billing"
	"github.com/rentworks/backend/internal/domain/partner"
	"github.com/rentworks/backend/internal/interfaces/http/dto"
	"github.com/rentworks/backend/internal/interfaces/http/middleware"
)

// testTenantID matches the development default applied when no X-Tenant-ID
// header is sent.
var testTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func init() {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}
}

// routeRegistrar matches what the router mounts; declared locally so tests
// don't import the router package.
type routeRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

func newTestRouter(registrars ...routeRegistrar) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")
	for _, r := range registrars {
		r.RegisterRoutes(api)
	}
	return engine
}

func performRequest(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// apiResponse mirrors dto.Response with the payload left raw so each test
// can decode it into the concrete response type.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func assertDecEqual(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	exp, err := decimal.NewFromString(expected)
	require.NoError(t, err)
	require.True(t, exp.Equal(actual), "expected %s, got %s", expected, actual)
}

// ====== Fixtures ======

func activeCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(testTenantID, "CUST-001", "Acme Scaffolding", partner.GSTClassificationRegular)
	require.NoError(t, err)
	require.NoError(t, customer.SetJurisdiction("29"))
	return customer
}

func activeOutlet(t *testing.T) *partner.Outlet {
	t.Helper()
	outlet, err := partner.NewOutlet(testTenantID, "BLR-01", "Bengaluru Depot", "29")
	require.NoError(t, err)
	return outlet
}

// domesticInvoice builds a pending intra-state invoice worth 1180.00:
// one line, 2 x 500.00 at the default 18% rate (CGST 90 + SGST 90).
func domesticInvoice(t *testing.T, customer *partner.Customer, outlet *partner.Outlet) *billing.Invoice {
	t.Helper()
	line, err := billing.ComputeLine(billing.LineInput{
		Description: "Scaffolding hire",
		HSNCode:     "995411",
		Quantity:    2,
		UnitRate:    decimal.NewFromInt(500),
	}, billing.TaxTreatmentIntraState, billing.DefaultTaxPolicy())
	require.NoError(t, err)

	invoice, err := billing.NewInvoice(
		testTenantID,
		"INV-2026-00042",
		customer.ID,
		customer.Name,
		outlet.ID,
		billing.TaxRegionDomestic,
		billing.TaxTreatmentIntraState,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		[]billing.InvoiceLine{*line},
	)
	require.NoError(t, err)
	return invoice
}

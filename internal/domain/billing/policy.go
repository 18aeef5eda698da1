package billing

import (
	"github.com/rentworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxPolicy carries the business defaults of the tax engine. It is built
// once from configuration and injected everywhere; nothing in the engine
// reads ambient defaults.
type TaxPolicy struct {
	// DefaultGSTRate is applied when a line omits its GST rate (percent).
	DefaultGSTRate decimal.Decimal

	// SettlementTolerance absorbs rounding noise when comparing cumulative
	// payments to the invoice total. It is not a business allowance for
	// overpayment.
	SettlementTolerance decimal.Decimal

	// FallbackTreatment, when set, is used instead of failing with
	// ErrIndeterminateJurisdiction. Leaving it nil makes a missing
	// jurisdiction a hard error.
	FallbackTreatment *TaxTreatment
}

// DefaultTaxPolicy returns the standard policy: 18% default rate,
// one-paisa settlement tolerance, no jurisdiction fallback.
func DefaultTaxPolicy() TaxPolicy {
	return TaxPolicy{
		DefaultGSTRate:      decimal.NewFromInt(18),
		SettlementTolerance: decimal.New(1, -2),
	}
}

// Validate checks the policy values
func (p TaxPolicy) Validate() error {
	if p.DefaultGSTRate.IsNegative() || p.DefaultGSTRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_GST_RATE", "Default GST rate must be between 0 and 100")
	}
	if p.SettlementTolerance.IsNegative() {
		return shared.NewDomainError("INVALID_TOLERANCE", "Settlement tolerance cannot be negative")
	}
	if p.FallbackTreatment != nil && !p.FallbackTreatment.IsValid() {
		return shared.NewDomainError("INVALID_TREATMENT", "Fallback tax treatment is not valid")
	}
	return nil
}

// ResolveTreatment classifies an invoice, applying the policy's explicit
// fallback when jurisdictions are indeterminate. Without a configured
// fallback the indeterminate condition is surfaced to the caller.
func (p TaxPolicy) ResolveTreatment(outletJurisdiction, customerJurisdiction string, region TaxRegion) (TaxTreatment, error) {
	treatment, err := ClassifyTreatment(outletJurisdiction, customerJurisdiction, region)
	if err == ErrIndeterminateJurisdiction && p.FallbackTreatment != nil {
		return *p.FallbackTreatment, nil
	}
	return treatment, err
}

package billing

import (
	"github.com/rentworks/backend/internal/domain/shared"
)

// TaxRegion classifies the supply for GST purposes at the invoice level.
// SEZ and EXPORT supplies are zero-rated regardless of jurisdictions.
type TaxRegion string

const (
	TaxRegionDomestic TaxRegion = "DOMESTIC"
	TaxRegionSEZ      TaxRegion = "SEZ"
	TaxRegionExport   TaxRegion = "EXPORT"
)

// IsValid checks if the region is a valid TaxRegion
func (r TaxRegion) IsValid() bool {
	switch r {
	case TaxRegionDomestic, TaxRegionSEZ, TaxRegionExport:
		return true
	}
	return false
}

// String returns the string representation of TaxRegion
func (r TaxRegion) String() string {
	return string(r)
}

// IsZeroRated returns true for regions taxed at zero regardless of rate
func (r TaxRegion) IsZeroRated() bool {
	return r == TaxRegionSEZ || r == TaxRegionExport
}

// TaxTreatment is the resolved tax regime applied to invoice lines
type TaxTreatment string

const (
	TaxTreatmentIntraState TaxTreatment = "INTRA_STATE" // CGST + SGST split
	TaxTreatmentInterState TaxTreatment = "INTER_STATE" // IGST in full
	TaxTreatmentExempt     TaxTreatment = "EXEMPT"      // No tax (SEZ / export)
)

// IsValid checks if the treatment is a valid TaxTreatment
func (t TaxTreatment) IsValid() bool {
	switch t {
	case TaxTreatmentIntraState, TaxTreatmentInterState, TaxTreatmentExempt:
		return true
	}
	return false
}

// String returns the string representation of TaxTreatment
func (t TaxTreatment) String() string {
	return string(t)
}

// ErrIndeterminateJurisdiction is returned when classification needs a
// jurisdiction that has not been captured. Callers must resolve it
// explicitly; the classifier never guesses.
var ErrIndeterminateJurisdiction = shared.NewDomainError(
	"INDETERMINATE_JURISDICTION",
	"Cannot classify tax treatment: outlet or customer jurisdiction is missing",
)

// ClassifyTreatment resolves the tax regime for an invoice.
// Zero-rated regions are exempt without looking at jurisdictions. For
// domestic supplies both state codes must be present; matching codes mean
// intra-state (CGST+SGST), differing codes mean inter-state (IGST).
func ClassifyTreatment(outletJurisdiction, customerJurisdiction string, region TaxRegion) (TaxTreatment, error) {
	if !region.IsValid() {
		return "", shared.NewDomainError("INVALID_TAX_REGION", "Tax region is not valid")
	}
	if region.IsZeroRated() {
		return TaxTreatmentExempt, nil
	}
	if outletJurisdiction == "" || customerJurisdiction == "" {
		return "", ErrIndeterminateJurisdiction
	}
	if outletJurisdiction == customerJurisdiction {
		return TaxTreatmentIntraState, nil
	}
	return TaxTreatmentInterState, nil
}

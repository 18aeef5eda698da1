package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rentworks/backend/internal/domain/partner"
)

// GST state codes are two digits, 01 through 38 for states and union
// territories plus 97 (other territory) and 99 (centre).
var stateCodePattern = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[0-8]|97|99)$`)

// RegisterValidators installs the custom binding rules used by the API
// request DTOs. Must be called once before the router handles traffic.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("gstin", validateGSTIN); err != nil {
		return err
	}
	return v.RegisterValidation("statecode", validateStateCode)
}

func validateGSTIN(fl validator.FieldLevel) bool {
	return partner.ValidGSTIN(fl.Field().String())
}

func validateStateCode(fl validator.FieldLevel) bool {
	return stateCodePattern.MatchString(fl.Field().String())
}

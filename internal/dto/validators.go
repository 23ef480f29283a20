package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mediakarsa/backoffice/internal/core/domain"
)

// headAccountNumberRe matches account numbers allowed for head accounts:
// digits and uppercase letters, no sub-account suffix separator.
var headAccountNumberRe = regexp.MustCompile(`^[0-9A-Z]{1,20}$`)

// RegisterCustomValidators installs the domain-specific binding rules on
// gin's validator engine. Call once at startup.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("headacctnumber", validateHeadAccountNumber)
	}
}

func validateHeadAccountNumber(fl validator.FieldLevel) bool {
	number := fl.Field().String()
	if domain.HasSubNumber(number) {
		return false
	}
	return headAccountNumberRe.MatchString(number)
}

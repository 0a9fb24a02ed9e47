package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyCodeRegexp = regexp.MustCompile(`^[A-Z]{3}$`)

// registerValidations installs the custom `currencycode` binding rule used by
// request DTOs. Safe to call more than once.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
			return currencyCodeRegexp.MatchString(fl.Field().String())
		})
	}
}

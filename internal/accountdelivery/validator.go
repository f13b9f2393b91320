package accountdelivery

import (
	"github.com/anjara/banky/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ValidAccountKind validates whether the account kind is supported.
var ValidAccountKind validator.Func = func(fl validator.FieldLevel) bool {
	if kind, ok := fl.Field().Interface().(string); ok {
		return domain.IsSupportedKind(kind)
	}
	return false
}

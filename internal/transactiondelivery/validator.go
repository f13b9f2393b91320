package transactiondelivery

import (
	"github.com/anjara/banky/pkg/moneypkg"
	"github.com/go-playground/validator/v10"
)

// ValidProvider validates whether the mobile money provider is supported.
var ValidProvider validator.Func = func(fl validator.FieldLevel) bool {
	if provider, ok := fl.Field().Interface().(string); ok {
		return moneypkg.IsSupportedProvider(provider)
	}
	return false
}

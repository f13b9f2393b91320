// Package moneypkg provides amount parsing and the mobile money fee schedule.
package moneypkg

import (
	"github.com/shopspring/decimal"
)

// Supported mobile money providers.
const (
	Mvola       = "mvola"
	OrangeMoney = "orange_money"
)

// SupportedProviders holds all the providers with a known fee schedule.
var SupportedProviders = []string{Mvola, OrangeMoney}

// IsSupportedProvider returns true if the provider is supported.
func IsSupportedProvider(provider string) bool {
	for _, p := range SupportedProviders {
		if p == provider {
			return true
		}
	}

	return false
}

// defaultFeeRate applies to unknown provider/operation combinations.
var defaultFeeRate = decimal.NewFromFloat(0.005)

// feeRates maps provider -> operation type -> fee rate.
var feeRates = map[string]map[string]decimal.Decimal{
	Mvola: {
		"deposit":    decimal.NewFromFloat(0.003),
		"withdrawal": decimal.NewFromFloat(0.008),
	},
	OrangeMoney: {
		"deposit":    decimal.NewFromFloat(0.005),
		"withdrawal": decimal.NewFromFloat(0.01),
	},
}

// FeeRate returns the fee rate for the given provider and operation type.
func FeeRate(provider, operation string) decimal.Decimal {
	rates, ok := feeRates[provider]
	if !ok {
		return defaultFeeRate
	}

	rate, ok := rates[operation]
	if !ok {
		return defaultFeeRate
	}

	return rate
}

// Fee computes amount * FeeRate(provider, operation).
func Fee(amount decimal.Decimal, provider, operation string) decimal.Decimal {
	return amount.Mul(FeeRate(provider, operation))
}

// ParsePositive parses an amount string and reports whether it is a valid
// number strictly greater than zero.
func ParsePositive(amount string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, false
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return d, false
	}

	return d, true
}

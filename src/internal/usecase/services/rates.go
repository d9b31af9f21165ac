package services

import (
	"math"

	"github.com/shopspring/decimal"
)

// Annual interest rates in percent.
var (
	loanRateSmall  = decimal.NewFromFloat(10.0)
	loanRateMedium = decimal.NewFromFloat(9.5)
	loanRateLarge  = decimal.NewFromFloat(9.0)
	loanRateSenior = decimal.NewFromFloat(9.5)

	fdRateShort  = decimal.NewFromFloat(6.0)
	fdRateMedium = decimal.NewFromFloat(7.0)
	fdRateLong   = decimal.NewFromFloat(8.0)
	fdSeniorBump = decimal.NewFromFloat(0.5)

	loanTierMedium = decimal.NewFromInt(500000)
	loanTierLarge  = decimal.NewFromInt(1000000)
)

// loanInterestRate picks the annual rate for a loan. Senior citizens get a
// flat preferential rate regardless of the amount tier.
func loanInterestRate(amount decimal.Decimal, seniorCitizen bool) decimal.Decimal {
	if seniorCitizen {
		return loanRateSenior
	}
	switch {
	case amount.LessThanOrEqual(loanTierMedium):
		return loanRateSmall
	case amount.LessThanOrEqual(loanTierLarge):
		return loanRateMedium
	default:
		return loanRateLarge
	}
}

// fixedDepositRate picks the annual rate for a deposit by tenure, with a
// senior-citizen bump on top.
func fixedDepositRate(tenureMonths int, seniorCitizen bool) decimal.Decimal {
	var rate decimal.Decimal
	switch {
	case tenureMonths < 12:
		rate = fdRateShort
	case tenureMonths < 36:
		rate = fdRateMedium
	default:
		rate = fdRateLong
	}
	if seniorCitizen {
		rate = rate.Add(fdSeniorBump)
	}
	return rate
}

// computeEMI is the standard amortization formula
// EMI = P * r * (1+r)^n / ((1+r)^n - 1) with r the monthly rate.
// Floating point is used only for the exponentiation; the final
// multiplication against the principal stays in decimal and is rounded to
// two places.
func computeEMI(principal decimal.Decimal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	monthlyRate, _ := annualRatePercent.Div(decimal.NewFromInt(1200)).Float64()
	if monthlyRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(tenureMonths))).Round(2)
	}

	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	multiplier := monthlyRate * factor / (factor - 1)
	return principal.Mul(decimal.NewFromFloat(multiplier)).Round(2)
}

// fixedDepositMaturity is simple interest over the tenure:
// M = P * (1 + rate/100 * months/12), rounded to two places.
func fixedDepositMaturity(principal decimal.Decimal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	interest := principal.
		Mul(annualRatePercent).
		Mul(decimal.NewFromInt(int64(tenureMonths))).
		Div(decimal.NewFromInt(1200))
	return principal.Add(interest).Round(2)
}

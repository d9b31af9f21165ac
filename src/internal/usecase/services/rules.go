package services

import "github.com/shopspring/decimal"

// Business-rule amounts, all in currency units with two fractional digits.
var (
	minTransactionAmount = decimal.NewFromInt(100)
	minMaintainedBalance = decimal.NewFromInt(1000)
	minTransferAmount    = decimal.NewFromInt(100)
	maxTransferAmount    = decimal.NewFromInt(100000)
	dailyTransferLimit   = decimal.NewFromInt(500000)
	minSavingsDeposit    = decimal.NewFromInt(1000)
	minFixedDeposit      = decimal.NewFromInt(10000)
	minLoanAmount        = decimal.NewFromInt(10000)
	seniorLoanCap        = decimal.NewFromInt(100000)

	// emiSalaryRatio caps the EMI at this share of the monthly salary.
	emiSalaryRatio = decimal.NewFromFloat(0.6)
)

const maxFixedDepositTenureMonths = 360

// maxDebitable is how much can leave the account while keeping the minimum
// maintained balance.
func maxDebitable(balance decimal.Decimal) decimal.Decimal {
	available := balance.Sub(minMaintainedBalance)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

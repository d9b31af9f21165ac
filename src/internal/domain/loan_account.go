package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanAccount does not carry the outstanding balance. Outstanding is derived
// from the latest LoanTransaction and defaults to the principal when no
// payment has been made yet.
type LoanAccount struct {
	LNAccountID  string
	CustomerID   string
	LoanAmount   decimal.Decimal
	StartDate    time.Time
	TenureMonths int
	InterestRate decimal.Decimal
	EMI          decimal.Decimal
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FixedDepositAccount struct {
	FDAccountID    string
	CustomerID     string
	Amount         decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	InterestRate   decimal.Decimal
	MaturityAmount decimal.Decimal
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanPaymentType string

const (
	LoanPaymentTypeEMI         LoanPaymentType = "EMI"
	LoanPaymentTypePartPayment LoanPaymentType = "PART_PAYMENT"
	LoanPaymentTypeFullClosure LoanPaymentType = "FULL_CLOSURE"
)

// LoanTransaction is the loan's balance history. The Outstanding column of
// the most recent row is the loan's current outstanding; the chain is
// monotonically non-increasing.
type LoanTransaction struct {
	TransactionID int64
	LNAccountID   string
	EMIDate       time.Time
	Amount        decimal.Decimal
	Outstanding   decimal.Decimal
	PaymentType   LoanPaymentType
	PaidBy        string
}

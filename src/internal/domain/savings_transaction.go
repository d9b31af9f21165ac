package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit        TransactionType = "DEPOSIT"
	TransactionTypeWithdraw       TransactionType = "WITHDRAW"
	TransactionTypeTransferDebit  TransactionType = "TRANSFER_DEBIT"
	TransactionTypeTransferCredit TransactionType = "TRANSFER_CREDIT"
	TransactionTypeLoanPayment    TransactionType = "LOAN_PAYMENT"
)

// SavingsTransaction is an append-only ledger entry. Rows are never mutated
// or deleted once written.
type SavingsTransaction struct {
	TransactionID   int64
	SBAccountID     string
	TransactionDate time.Time
	TransactionType TransactionType
	Amount          decimal.Decimal
}

package domain

import "github.com/shopspring/decimal"

// SavingsAccount holds the current balance for a SAVING account. The balance
// of an OPEN account never falls below the configured minimum after a
// committed operation.
type SavingsAccount struct {
	SBAccountID string
	CustomerID  string
	Balance     decimal.Decimal
}

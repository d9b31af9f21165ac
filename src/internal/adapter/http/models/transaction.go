package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	SBAccountID string          `json:"sbAccountId"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r DepositRequest) Validate() error {
	return validateTransactionInput(r.SBAccountID, r.Amount)
}

type WithdrawRequest struct {
	SBAccountID string          `json:"sbAccountId"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r WithdrawRequest) Validate() error {
	return validateTransactionInput(r.SBAccountID, r.Amount)
}

type TransactionResponse struct {
	SBAccountID     string          `json:"sbAccountId"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	OldBalance      decimal.Decimal `json:"oldBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	TransactionDate time.Time       `json:"transactionDate"`
}

type TransactionHistoryItem struct {
	TransactionID   int64           `json:"transactionId"`
	SBAccountID     string          `json:"sbAccountId"`
	TransactionDate time.Time       `json:"transactionDate"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
}

type AccountSummaryResponse struct {
	SBAccountID         string          `json:"sbAccountId"`
	CustomerID          string          `json:"customerId"`
	CurrentBalance      decimal.Decimal `json:"currentBalance"`
	TotalDeposits       decimal.Decimal `json:"totalDeposits"`
	TotalWithdrawals    decimal.Decimal `json:"totalWithdrawals"`
	TransactionCount    int64           `json:"transactionCount"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
}

func validateTransactionInput(sbAccountID string, amount decimal.Decimal) error {
	var errs []string

	if strings.TrimSpace(sbAccountID) == "" {
		errs = append(errs, "sbAccountId is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

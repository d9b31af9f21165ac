package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	FromCustomerID string          `json:"fromCustomerId"`
	ToAccountID    string          `json:"toAccountId"`
	Amount         decimal.Decimal `json:"amount"`
	Remarks        string          `json:"remarks,omitempty"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FromCustomerID) == "" {
		errs = append(errs, "fromCustomerId is required")
	}
	if strings.TrimSpace(r.ToAccountID) == "" {
		errs = append(errs, "toAccountId is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	FromAccountID  string          `json:"fromAccountId"`
	ToAccountID    string          `json:"toAccountId"`
	Amount         decimal.Decimal `json:"amount"`
	NewFromBalance decimal.Decimal `json:"newFromBalance"`
	NewToBalance   decimal.Decimal `json:"newToBalance"`
	Remarks        string          `json:"remarks"`
	Status         string          `json:"status"`
}

type TransferHistoryItem struct {
	TransferID     int64           `json:"transferId"`
	FromAccountID  string          `json:"fromAccountId"`
	ToAccountID    string          `json:"toAccountId"`
	Amount         decimal.Decimal `json:"amount"`
	TransferDate   time.Time       `json:"transferDate"`
	FromCustomerID string          `json:"fromCustomerId"`
	ToCustomerID   string          `json:"toCustomerId"`
	Status         string          `json:"status"`
	Remarks        string          `json:"remarks"`
	IsSent         bool            `json:"isSent"`
	IsReceived     bool            `json:"isReceived"`
}

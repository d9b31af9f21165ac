package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type OpenSavingsRequest struct {
	CustomerID     string          `json:"customerId"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
	OpenedBy       string          `json:"openedBy"`
	OpenedByRole   string          `json:"openedByRole"`
}

func (r OpenSavingsRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if r.InitialDeposit.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "initialDeposit must be greater than zero")
	}
	if strings.TrimSpace(r.OpenedBy) == "" {
		errs = append(errs, "openedBy is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type OpenSavingsResponse struct {
	SBAccountID string          `json:"sbAccountId"`
	CustomerID  string          `json:"customerId"`
	Balance     decimal.Decimal `json:"balance"`
}

type OpenFixedDepositRequest struct {
	CustomerID   string          `json:"customerId"`
	Amount       decimal.Decimal `json:"amount"`
	StartDate    string          `json:"startDate"`
	TenureMonths int             `json:"tenureMonths"`
	OpenedBy     string          `json:"openedBy"`
	OpenedByRole string          `json:"openedByRole"`
}

func (r OpenFixedDepositRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if strings.TrimSpace(r.StartDate) == "" {
		errs = append(errs, "startDate is required")
	}
	if r.TenureMonths <= 0 {
		errs = append(errs, "tenureMonths must be greater than zero")
	}
	if strings.TrimSpace(r.OpenedBy) == "" {
		errs = append(errs, "openedBy is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type OpenFixedDepositResponse struct {
	FDAccountID    string          `json:"fdAccountId"`
	CustomerID     string          `json:"customerId"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	MaturityAmount decimal.Decimal `json:"maturityAmount"`
	EndDate        string          `json:"endDate"`
}

type CloseAccountResponse struct {
	AccountID    string          `json:"accountId"`
	FinalBalance decimal.Decimal `json:"finalBalance"`
}

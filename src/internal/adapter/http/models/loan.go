package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type LoanPaymentRequest struct {
	LNAccountID string          `json:"lnAccountId"`
	CustomerID  string          `json:"customerId"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"paymentType,omitempty"`
}

func (r LoanPaymentRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.LNAccountID) == "" {
		errs = append(errs, "lnAccountId is required")
	}
	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	switch strings.ToUpper(strings.TrimSpace(r.PaymentType)) {
	case "", "EMI", "PART_PAYMENT", "FULL_CLOSURE":
	default:
		errs = append(errs, "paymentType must be one of EMI, PART_PAYMENT, FULL_CLOSURE")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type LoanPaymentResponse struct {
	LNAccountID    string          `json:"lnAccountId"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	NewOutstanding decimal.Decimal `json:"newOutstanding"`
	PaymentType    string          `json:"paymentType"`
	AccountClosed  bool            `json:"accountClosed"`
}

type OpenLoanRequest struct {
	CustomerID    string          `json:"customerId"`
	LoanAmount    decimal.Decimal `json:"loanAmount"`
	StartDate     string          `json:"startDate"`
	TenureMonths  int             `json:"tenureMonths"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	OpenedBy      string          `json:"openedBy"`
	OpenedByRole  string          `json:"openedByRole"`
}

func (r OpenLoanRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if r.LoanAmount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "loanAmount must be greater than zero")
	}
	if strings.TrimSpace(r.StartDate) == "" {
		errs = append(errs, "startDate is required")
	}
	if r.TenureMonths <= 0 {
		errs = append(errs, "tenureMonths must be greater than zero")
	}
	if r.MonthlySalary.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "monthlySalary must be greater than zero")
	}
	if strings.TrimSpace(r.OpenedBy) == "" {
		errs = append(errs, "openedBy is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type OpenLoanResponse struct {
	LNAccountID  string          `json:"lnAccountId"`
	LoanAmount   decimal.Decimal `json:"loanAmount"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TenureMonths int             `json:"tenureMonths"`
	EMI          decimal.Decimal `json:"emi"`
}

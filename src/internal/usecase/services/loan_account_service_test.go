package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/http/models"
	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/usecase/services"
)

func newLoanAccountFixture(t *testing.T, dob *time.Time) (*services.LoanAccountService, *fakeAccountRepo) {
	t.Helper()

	accountRepo := newFakeAccountRepo()
	loanRepo := newFakeLoanRepo()
	customerRepo := newFakeCustomerRepo()
	customerRepo.customers["CU1111111111"] = domain.Customer{
		CustomerID: "CU1111111111",
		Name:       "A Customer",
		DOB:        dob,
	}

	svc := services.NewLoanAccountService(accountRepo, loanRepo, customerRepo, fixedIDs{loanID: "LN1111111111"})
	return svc, accountRepo
}

func openLoanRequest(amount int64, tenure int, salary int64) models.OpenLoanRequest {
	return models.OpenLoanRequest{
		CustomerID:    "CU1111111111",
		LoanAmount:    decimal.NewFromInt(amount),
		StartDate:     "2026-01-01",
		TenureMonths:  tenure,
		MonthlySalary: decimal.NewFromInt(salary),
		OpenedBy:      "teller01",
		OpenedByRole:  "EMPLOYEE",
	}
}

func TestLoanAccountServiceValidationError(t *testing.T) {
	svc, _ := newLoanAccountFixture(t, nil)

	_, err := svc.OpenLoan(context.Background(), models.OpenLoanRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty open loan request")
	}
}

func TestLoanAccountServiceRejectsCustomerRole(t *testing.T) {
	svc, _ := newLoanAccountFixture(t, nil)

	req := openLoanRequest(200000, 60, 50000)
	req.OpenedByRole = "CUSTOMER"

	resp, err := svc.OpenLoan(context.Background(), req)
	require.ErrorIs(t, err, commons.ErrUnauthorized)
	require.Equal(t, commons.ReasonBusinessRule, resp.Reason)
}

func TestLoanAccountServiceEMIFormula(t *testing.T) {
	svc, _ := newLoanAccountFixture(t, nil)

	resp, err := svc.OpenLoan(context.Background(), openLoanRequest(500000, 60, 50000))
	require.NoError(t, err)
	require.True(t, resp.Data.InterestRate.Equal(decimal.NewFromFloat(10.0)))

	emi, _ := resp.Data.EMI.Float64()
	require.InDelta(t, 10623.52, emi, 1.0)
}

func TestLoanAccountServiceRateTiers(t *testing.T) {
	cases := []struct {
		amount int64
		rate   float64
	}{
		{400000, 10.0},
		{800000, 9.5},
		{1500000, 9.0},
	}

	for _, tc := range cases {
		svc, _ := newLoanAccountFixture(t, nil)
		resp, err := svc.OpenLoan(context.Background(), openLoanRequest(tc.amount, 120, 200000))
		require.NoError(t, err)
		require.True(t, resp.Data.InterestRate.Equal(decimal.NewFromFloat(tc.rate)),
			"amount %d: expected rate %v, got %s", tc.amount, tc.rate, resp.Data.InterestRate)
	}
}

func TestLoanAccountServiceSeniorCitizenCapAndRate(t *testing.T) {
	dob := time.Date(1950, time.March, 15, 0, 0, 0, 0, time.UTC)

	svc, _ := newLoanAccountFixture(t, &dob)
	resp, err := svc.OpenLoan(context.Background(), openLoanRequest(200000, 60, 50000))
	require.Error(t, err)
	require.Equal(t, commons.ReasonBusinessRule, resp.Reason)

	svc, _ = newLoanAccountFixture(t, &dob)
	resp, err = svc.OpenLoan(context.Background(), openLoanRequest(100000, 60, 50000))
	require.NoError(t, err)
	require.True(t, resp.Data.InterestRate.Equal(decimal.NewFromFloat(9.5)))
}

func TestLoanAccountServiceEMISalaryCeiling(t *testing.T) {
	svc, _ := newLoanAccountFixture(t, nil)

	// EMI for 500000 over 60 months is around 10623; 60% of 15000 is 9000.
	resp, err := svc.OpenLoan(context.Background(), openLoanRequest(500000, 60, 15000))
	require.Error(t, err)
	require.Equal(t, commons.ReasonBusinessRule, resp.Reason)
	require.Contains(t, resp.Message, "60%")
}

func TestLoanAccountServiceCreatesDirectoryRow(t *testing.T) {
	svc, accountRepo := newLoanAccountFixture(t, nil)

	_, err := svc.OpenLoan(context.Background(), openLoanRequest(200000, 60, 50000))
	require.NoError(t, err)

	account, err := accountRepo.GetByID(context.Background(), "LN1111111111")
	require.NoError(t, err)
	require.Equal(t, domain.AccountTypeLoan, account.AccountType)
	require.Equal(t, domain.AccountStatusOpen, account.Status)
}

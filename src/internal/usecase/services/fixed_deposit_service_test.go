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

func newFixedDepositFixture(t *testing.T, dob *time.Time) *services.FixedDepositService {
	t.Helper()

	accountRepo := newFakeAccountRepo()
	fdRepo := newFakeFDRepo()
	customerRepo := newFakeCustomerRepo()
	customerRepo.customers["CU1111111111"] = domain.Customer{
		CustomerID: "CU1111111111",
		Name:       "A Customer",
		DOB:        dob,
	}

	return services.NewFixedDepositService(accountRepo, fdRepo, customerRepo, fixedIDs{fdID: "FD1111111111"})
}

func openFDRequest(amount int64, tenure int) models.OpenFixedDepositRequest {
	return models.OpenFixedDepositRequest{
		CustomerID:   "CU1111111111",
		Amount:       decimal.NewFromInt(amount),
		StartDate:    "2026-01-01",
		TenureMonths: tenure,
		OpenedBy:     "teller01",
		OpenedByRole: "MANAGER",
	}
}

func TestFixedDepositServiceMinimumAmount(t *testing.T) {
	svc := newFixedDepositFixture(t, nil)

	resp, err := svc.OpenFixedDeposit(context.Background(), openFDRequest(5000, 24))
	require.Error(t, err)
	require.Equal(t, commons.ReasonValidation, resp.Reason)
}

func TestFixedDepositServiceMaximumTenure(t *testing.T) {
	svc := newFixedDepositFixture(t, nil)

	resp, err := svc.OpenFixedDeposit(context.Background(), openFDRequest(50000, 400))
	require.Error(t, err)
	require.Equal(t, commons.ReasonValidation, resp.Reason)
}

func TestFixedDepositServiceRateByTenure(t *testing.T) {
	cases := []struct {
		tenure int
		rate   float64
	}{
		{6, 6.0},
		{24, 7.0},
		{48, 8.0},
	}

	for _, tc := range cases {
		svc := newFixedDepositFixture(t, nil)
		resp, err := svc.OpenFixedDeposit(context.Background(), openFDRequest(50000, tc.tenure))
		require.NoError(t, err)
		require.True(t, resp.Data.InterestRate.Equal(decimal.NewFromFloat(tc.rate)),
			"tenure %d: expected rate %v, got %s", tc.tenure, tc.rate, resp.Data.InterestRate)
	}
}

func TestFixedDepositServiceSeniorCitizenBump(t *testing.T) {
	dob := time.Date(1950, time.March, 15, 0, 0, 0, 0, time.UTC)
	svc := newFixedDepositFixture(t, &dob)

	resp, err := svc.OpenFixedDeposit(context.Background(), openFDRequest(50000, 24))
	require.NoError(t, err)
	require.True(t, resp.Data.InterestRate.Equal(decimal.NewFromFloat(7.5)))
}

func TestFixedDepositServiceMaturityAmount(t *testing.T) {
	svc := newFixedDepositFixture(t, nil)

	// 50000 at 7% simple interest over 24 months: 50000 + 50000*0.07*2 = 57000.
	resp, err := svc.OpenFixedDeposit(context.Background(), openFDRequest(50000, 24))
	require.NoError(t, err)
	require.True(t, resp.Data.MaturityAmount.Equal(decimal.NewFromInt(57000)))
	require.Equal(t, "2028-01-01", resp.Data.EndDate)
}

func TestFixedDepositServiceUnknownCustomer(t *testing.T) {
	svc := newFixedDepositFixture(t, nil)

	req := openFDRequest(50000, 24)
	req.CustomerID = "CU9999999999"

	resp, err := svc.OpenFixedDeposit(context.Background(), req)
	require.ErrorIs(t, err, commons.ErrRecordNotFound)
	require.Equal(t, commons.ReasonNotFound, resp.Reason)
}

package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/http/models"
	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/usecase/services"
)

func newTransactionFixture(t *testing.T, balance int64) (*services.SavingsTransactionService, *fakeSavingsRepo, *fakeTxnRepo) {
	t.Helper()

	savingsRepo := newFakeSavingsRepo()
	txnRepo := newFakeTxnRepo()
	_, err := savingsRepo.Create(context.Background(), domain.SavingsAccount{
		SBAccountID: "SB1111111111",
		CustomerID:  "CU1111111111",
		Balance:     decimal.NewFromInt(balance),
	})
	require.NoError(t, err)

	svc := services.NewSavingsTransactionService(savingsRepo, txnRepo, services.NewAccountLocker())
	return svc, savingsRepo, txnRepo
}

func TestSavingsTransactionServiceDepositValidationError(t *testing.T) {
	svc := services.NewSavingsTransactionService(nil, nil, services.NewAccountLocker())

	_, err := svc.Deposit(context.Background(), models.DepositRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty deposit request")
	}
}

func TestSavingsTransactionServiceDepositBelowMinimum(t *testing.T) {
	svc, _, _ := newTransactionFixture(t, 5000)

	resp, err := svc.Deposit(context.Background(), models.DepositRequest{
		SBAccountID: "SB1111111111",
		Amount:      decimal.NewFromInt(50),
	})
	require.Error(t, err)
	require.Equal(t, commons.ReasonValidation, resp.Reason)
}

func TestSavingsTransactionServiceDepositIncreasesBalance(t *testing.T) {
	svc, savingsRepo, _ := newTransactionFixture(t, 5000)

	resp, err := svc.Deposit(context.Background(), models.DepositRequest{
		SBAccountID: "SB1111111111",
		Amount:      decimal.NewFromInt(2500),
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.True(t, resp.Data.NewBalance.Equal(decimal.NewFromInt(7500)))
	require.True(t, savingsRepo.balance("SB1111111111").Equal(decimal.NewFromInt(7500)))
}

func TestSavingsTransactionServiceWithdrawKeepsMinimumBalance(t *testing.T) {
	svc, savingsRepo, _ := newTransactionFixture(t, 5000)

	// 5000 - 4200 = 800 would drop below the 1000 minimum.
	resp, err := svc.Withdraw(context.Background(), models.WithdrawRequest{
		SBAccountID: "SB1111111111",
		Amount:      decimal.NewFromInt(4200),
	})
	require.ErrorIs(t, err, commons.ErrInsufficientBalance)
	require.Equal(t, commons.ReasonBusinessRule, resp.Reason)
	require.True(t, savingsRepo.balance("SB1111111111").Equal(decimal.NewFromInt(5000)))

	// 5000 - 4000 = 1000 sits exactly on the minimum and is allowed.
	resp, err = svc.Withdraw(context.Background(), models.WithdrawRequest{
		SBAccountID: "SB1111111111",
		Amount:      decimal.NewFromInt(4000),
	})
	require.NoError(t, err)
	require.True(t, resp.Data.NewBalance.Equal(decimal.NewFromInt(1000)))
}

func TestSavingsTransactionServiceWithdrawUnknownAccount(t *testing.T) {
	svc, _, _ := newTransactionFixture(t, 5000)

	resp, err := svc.Withdraw(context.Background(), models.WithdrawRequest{
		SBAccountID: "SB9999999999",
		Amount:      decimal.NewFromInt(500),
	})
	require.ErrorIs(t, err, commons.ErrRecordNotFound)
	require.Equal(t, commons.ReasonNotFound, resp.Reason)
}

func TestSavingsTransactionServiceRestoresBalanceWhenRecordFails(t *testing.T) {
	svc, savingsRepo, txnRepo := newTransactionFixture(t, 5000)
	txnRepo.failRecord = true

	resp, err := svc.Deposit(context.Background(), models.DepositRequest{
		SBAccountID: "SB1111111111",
		Amount:      decimal.NewFromInt(2000),
	})
	require.Error(t, err)
	require.Equal(t, commons.ReasonPartialFailure, resp.Reason)
	require.True(t, savingsRepo.balance("SB1111111111").Equal(decimal.NewFromInt(5000)))
}

func TestSavingsTransactionServiceLedgerMatchesBalance(t *testing.T) {
	svc, savingsRepo, txnRepo := newTransactionFixture(t, 5000)
	ctx := context.Background()

	amounts := []int64{1500, 300, 700, 200}
	_, err := svc.Deposit(ctx, models.DepositRequest{SBAccountID: "SB1111111111", Amount: decimal.NewFromInt(amounts[0])})
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, models.WithdrawRequest{SBAccountID: "SB1111111111", Amount: decimal.NewFromInt(amounts[1])})
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, models.DepositRequest{SBAccountID: "SB1111111111", Amount: decimal.NewFromInt(amounts[2])})
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, models.WithdrawRequest{SBAccountID: "SB1111111111", Amount: decimal.NewFromInt(amounts[3])})
	require.NoError(t, err)

	deposits, err := txnRepo.TotalByType(ctx, "SB1111111111", domain.TransactionTypeDeposit)
	require.NoError(t, err)
	withdrawals, err := txnRepo.TotalByType(ctx, "SB1111111111", domain.TransactionTypeWithdraw)
	require.NoError(t, err)

	expected := decimal.NewFromInt(5000).Add(deposits).Sub(withdrawals)
	require.True(t, savingsRepo.balance("SB1111111111").Equal(expected))
}

func TestSavingsTransactionServiceAccountSummary(t *testing.T) {
	svc, _, _ := newTransactionFixture(t, 5000)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, models.DepositRequest{SBAccountID: "SB1111111111", Amount: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, models.WithdrawRequest{SBAccountID: "SB1111111111", Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)

	resp, err := svc.GetAccountSummary(ctx, "SB1111111111")
	require.NoError(t, err)
	require.True(t, resp.Data.TotalDeposits.Equal(decimal.NewFromInt(1000)))
	require.True(t, resp.Data.TotalWithdrawals.Equal(decimal.NewFromInt(500)))
	require.EqualValues(t, 2, resp.Data.TransactionCount)
	require.NotNil(t, resp.Data.LastTransactionDate)
}

func TestSavingsTransactionServiceHistoryValidationError(t *testing.T) {
	svc, _, _ := newTransactionFixture(t, 5000)

	_, err := svc.GetTransactionHistory(context.Background(), "  ", nil, nil)
	if err == nil {
		t.Fatal("expected validation error for blank account id")
	}
}

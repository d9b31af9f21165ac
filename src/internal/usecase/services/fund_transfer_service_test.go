package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/http/models"
	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/usecase/services"
)

type transferFixture struct {
	svc          *services.FundTransferService
	savingsRepo  *fakeSavingsRepo
	accountRepo  *fakeAccountRepo
	txnRepo      *fakeTxnRepo
	transferRepo *fakeTransferRepo
}

func newTransferFixture(t *testing.T, fromBalance, toBalance int64) transferFixture {
	t.Helper()
	ctx := context.Background()

	savingsRepo := newFakeSavingsRepo()
	accountRepo := newFakeAccountRepo()
	txnRepo := newFakeTxnRepo()
	transferRepo := newFakeTransferRepo()

	for _, seed := range []struct {
		accountID  string
		customerID string
		balance    int64
	}{
		{"SB1111111111", "CU1111111111", fromBalance},
		{"SB2222222222", "CU2222222222", toBalance},
	} {
		_, err := savingsRepo.Create(ctx, domain.SavingsAccount{
			SBAccountID: seed.accountID,
			CustomerID:  seed.customerID,
			Balance:     decimal.NewFromInt(seed.balance),
		})
		require.NoError(t, err)
		_, err = accountRepo.Create(ctx, domain.Account{
			AccountID:   seed.accountID,
			AccountType: domain.AccountTypeSaving,
			CustomerID:  seed.customerID,
			Status:      domain.AccountStatusOpen,
		})
		require.NoError(t, err)
	}

	svc := services.NewFundTransferService(transferRepo, savingsRepo, accountRepo, txnRepo, services.NewAccountLocker())
	return transferFixture{svc: svc, savingsRepo: savingsRepo, accountRepo: accountRepo, txnRepo: txnRepo, transferRepo: transferRepo}
}

func TestFundTransferServiceValidationError(t *testing.T) {
	svc := services.NewFundTransferService(nil, nil, nil, nil, services.NewAccountLocker())

	_, err := svc.TransferFunds(context.Background(), models.TransferRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty transfer request")
	}
}

func TestFundTransferServiceAmountBounds(t *testing.T) {
	fix := newTransferFixture(t, 500000, 5000)

	resp, err := fix.svc.TransferFunds(context.Background(), models.TransferRequest{
		FromCustomerID: "CU1111111111",
		ToAccountID:    "SB2222222222",
		Amount:         decimal.NewFromInt(50),
	})
	require.Error(t, err)
	require.Equal(t, commons.ReasonValidation, resp.Reason)

	resp, err = fix.svc.TransferFunds(context.Background(), models.TransferRequest{
		FromCustomerID: "CU1111111111",
		ToAccountID:    "SB2222222222",
		Amount:         decimal.NewFromInt(150000),
	})
	require.Error(t, err)
	require.Equal(t, commons.ReasonValidation, resp.Reason)
}

func TestFundTransferServiceRejectsSelfTransfer(t *testing.T) {
	fix := newTransferFixture(t, 10000, 5000)

	resp, err := fix.svc.TransferFunds(context.Background(), models.TransferRequest{
		FromCustomerID: "CU1111111111",
		ToAccountID:    "SB1111111111",
		Amount:         decimal.NewFromInt(500),
	})
	require.ErrorIs(t, err, commons.ErrSelfTransfer)
	require.Equal(t, commons.ReasonBusinessRule, resp.Reason)
}

func TestFundTransferServiceRejectsClosedRecipient(t *testing.T) {
	fix := newTransferFixture(t, 10000, 5000)
	require.NoError(t, fix.accountRepo.Close(context.Background(), "SB2222222222"))

	resp, err := fix.svc.TransferFunds(context.Background(), models.TransferRequest{
		FromCustomerID: "CU1111111111",
		ToAccountID:    "SB2222222222",
		Amount:         decimal.NewFromInt(500),
	})
	require.ErrorIs(t, err, commons.ErrAccountNotActive)
	require.Equal(t, commons.ReasonBusinessRule, resp.Reason)
}

func TestFundTransferServiceKeepsMinimumBalance(t *testing.T) {
	fix := newTransferFixture(t, 5000, 5000)

	resp, err := fix.svc.TransferFunds(context.Background(), models.TransferRequest{
		FromCustomerID: "CU1111111111",
		ToAccountID:    "SB2222222222",
		Amount:         decimal.NewFromInt(4500),
	})
	require.ErrorIs(t, err, commons.ErrInsufficientBalance)
	require.Equal(t, commons.ReasonBusinessRule, resp.Reason)
	require.True(t, fix.savingsRepo.balance("SB1111111111").Equal(decimal.NewFromInt(5000)))
}

func TestFundTransferServiceDailyLimit(t *testing.T) {
	fix := newTransferFixture(t, 900000, 5000)
	ctx := context.Background()

	// 480000 already sent today leaves only 20000 of the 500000 daily limit.
	_, err := fix.transferRepo.Create(ctx, domain.FundTransfer{
		FromAccountID:  "SB1111111111",
		ToAccountID:    "SB2222222222",
		Amount:         decimal.NewFromInt(480000),
		TransferDate:   time.Now(),
		FromCustomerID: "CU1111111111",
		ToCustomerID:   "CU2222222222",
		Status:         domain.TransferStatusSuccess,
	})
	require.NoError(t, err)

	resp, err := fix.svc.TransferFunds(ctx, models.TransferRequest{
		FromCustomerID: "CU1111111111",
		ToAccountID:    "SB2222222222",
		Amount:         decimal.NewFromInt(25000),
	})
	require.ErrorIs(t, err, commons.ErrDailyLimitExceeded)
	require.Contains(t, resp.Message, "20000.00")
}

func TestFundTransferServiceFailedTransfersDoNotCountTowardLimit(t *testing.T) {
	fix := newTransferFixture(t, 900000, 5000)
	ctx := context.Background()

	_, err := fix.transferRepo.Create(ctx, domain.FundTransfer{
		FromAccountID:  "SB1111111111",
		ToAccountID:    "SB2222222222",
		Amount:         decimal.NewFromInt(480000),
		TransferDate:   time.Now(),
		FromCustomerID: "CU1111111111",
		ToCustomerID:   "CU2222222222",
		Status:         domain.TransferStatusFailed,
	})
	require.NoError(t, err)

	_, err = fix.svc.TransferFunds(ctx, models.TransferRequest{
		FromCustomerID: "CU1111111111",
		ToAccountID:    "SB2222222222",
		Amount:         decimal.NewFromInt(25000),
	})
	require.NoError(t, err)
}

func TestFundTransferServiceSuccessMovesBothBalances(t *testing.T) {
	fix := newTransferFixture(t, 10000, 2000)
	ctx := context.Background()

	resp, err := fix.svc.TransferFunds(ctx, models.TransferRequest{
		FromCustomerID: "CU1111111111",
		ToAccountID:    "SB2222222222",
		Amount:         decimal.NewFromInt(3000),
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.True(t, resp.Data.NewFromBalance.Equal(decimal.NewFromInt(7000)))
	require.True(t, resp.Data.NewToBalance.Equal(decimal.NewFromInt(5000)))
	require.True(t, fix.savingsRepo.balance("SB1111111111").Equal(decimal.NewFromInt(7000)))
	require.True(t, fix.savingsRepo.balance("SB2222222222").Equal(decimal.NewFromInt(5000)))

	require.Len(t, fix.txnRepo.recordsOfType(domain.TransactionTypeTransferDebit), 1)
	require.Len(t, fix.txnRepo.recordsOfType(domain.TransactionTypeTransferCredit), 1)

	history, err := fix.svc.GetTransferHistory(ctx, "CU1111111111")
	require.NoError(t, err)
	require.Len(t, *history.Data, 1)
	require.True(t, (*history.Data)[0].IsSent)
	require.False(t, (*history.Data)[0].IsReceived)
}

func TestFundTransferServiceRestoresSenderOnCreditFailure(t *testing.T) {
	fix := newTransferFixture(t, 10000, 2000)
	fix.savingsRepo.failUpdateFor["SB2222222222"] = true

	resp, err := fix.svc.TransferFunds(context.Background(), models.TransferRequest{
		FromCustomerID: "CU1111111111",
		ToAccountID:    "SB2222222222",
		Amount:         decimal.NewFromInt(3000),
	})
	require.Error(t, err)
	require.Equal(t, commons.ReasonPartialFailure, resp.Reason)
	require.True(t, fix.savingsRepo.balance("SB1111111111").Equal(decimal.NewFromInt(10000)))
	require.True(t, fix.savingsRepo.balance("SB2222222222").Equal(decimal.NewFromInt(2000)))
}

func TestFundTransferServiceOppositeDirectionsDoNotDeadlock(t *testing.T) {
	fix := newTransferFixture(t, 50000, 50000)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = fix.svc.TransferFunds(ctx, models.TransferRequest{
				FromCustomerID: "CU1111111111",
				ToAccountID:    "SB2222222222",
				Amount:         decimal.NewFromInt(100),
			})
		}()
		go func() {
			defer wg.Done()
			_, _ = fix.svc.TransferFunds(ctx, models.TransferRequest{
				FromCustomerID: "CU2222222222",
				ToAccountID:    "SB1111111111",
				Amount:         decimal.NewFromInt(100),
			})
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("transfers deadlocked")
	}

	// Equal opposing volume leaves both balances where they started.
	total := fix.savingsRepo.balance("SB1111111111").Add(fix.savingsRepo.balance("SB2222222222"))
	require.True(t, total.Equal(decimal.NewFromInt(100000)))
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/http/models"
	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/repository/repo_interfaces"
	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
	"github.com/shopspring/decimal"
)

// SavingsTransactionService handles deposits and withdrawals against a single
// savings account. Operations are serialized per account through the shared
// locker, and every call re-reads the current balance before computing.
type SavingsTransactionService struct {
	savingsRepo repo_interfaces.SavingsAccountRepository
	txnRepo     repo_interfaces.SavingsTransactionRepository
	locker      *AccountLocker
}

func NewSavingsTransactionService(
	savingsRepo repo_interfaces.SavingsAccountRepository,
	txnRepo repo_interfaces.SavingsTransactionRepository,
	locker *AccountLocker,
) *SavingsTransactionService {
	return &SavingsTransactionService{
		savingsRepo: savingsRepo,
		txnRepo:     txnRepo,
		locker:      locker,
	}
}

func (s *SavingsTransactionService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("savings transaction service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	if req.Amount.LessThan(minTransactionAmount) {
		err := fmt.Errorf("minimum deposit amount is %s", minTransactionAmount.StringFixed(2))
		return commons.ErrorResponse[models.TransactionResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	sbAccountID := strings.TrimSpace(req.SBAccountID)
	unlock := s.locker.Lock(sbAccountID)
	defer unlock()

	account, err := s.savingsRepo.GetByID(ctx, sbAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse](commons.ReasonNotFound, fmt.Sprintf("Savings account %s not found", sbAccountID)), err
		}
		return commons.ErrorResponse[models.TransactionResponse](commons.ReasonPersistence, "failed to process deposit", "Unable to process deposit right now"), err
	}

	oldBalance := account.Balance
	newBalance := oldBalance.Add(req.Amount)

	return s.applyTransaction(ctx, sbAccountID, domain.TransactionTypeDeposit, req.Amount, oldBalance, newBalance)
}

func (s *SavingsTransactionService) Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("savings transaction service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	if req.Amount.LessThan(minTransactionAmount) {
		err := fmt.Errorf("minimum withdrawal amount is %s", minTransactionAmount.StringFixed(2))
		return commons.ErrorResponse[models.TransactionResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	sbAccountID := strings.TrimSpace(req.SBAccountID)
	unlock := s.locker.Lock(sbAccountID)
	defer unlock()

	account, err := s.savingsRepo.GetByID(ctx, sbAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse](commons.ReasonNotFound, fmt.Sprintf("Savings account %s not found", sbAccountID)), err
		}
		return commons.ErrorResponse[models.TransactionResponse](commons.ReasonPersistence, "failed to process withdrawal", "Unable to process withdrawal right now"), err
	}

	oldBalance := account.Balance
	newBalance := oldBalance.Sub(req.Amount)
	if newBalance.LessThan(minMaintainedBalance) {
		message := fmt.Sprintf(
			"Insufficient balance. A minimum balance of %s must be maintained. Maximum withdrawable: %s",
			minMaintainedBalance.StringFixed(2),
			maxDebitable(oldBalance).StringFixed(2),
		)
		return commons.ErrorResponse[models.TransactionResponse](commons.ReasonBusinessRule, message), commons.ErrInsufficientBalance
	}

	return s.applyTransaction(ctx, sbAccountID, domain.TransactionTypeWithdraw, req.Amount, oldBalance, newBalance)
}

// applyTransaction persists the new balance, then appends the ledger record.
// If the append fails after the balance write, the balance is rewritten back
// to its pre-operation value; when that rewrite fails too, the caller is told
// that manual reconciliation is required.
func (s *SavingsTransactionService) applyTransaction(
	ctx context.Context,
	sbAccountID string,
	transactionType domain.TransactionType,
	amount decimal.Decimal,
	oldBalance decimal.Decimal,
	newBalance decimal.Decimal,
) (commons.Response[models.TransactionResponse], error) {
	if err := s.savingsRepo.UpdateBalance(ctx, sbAccountID, newBalance); err != nil {
		return commons.ErrorResponse[models.TransactionResponse](commons.ReasonPersistence, "Failed to update account balance"), err
	}

	if err := s.txnRepo.Record(ctx, sbAccountID, transactionType, amount); err != nil {
		logger.Error("savings transaction service record failed, attempting balance restore", err, logger.Fields{
			"sbAccountId":     sbAccountID,
			"transactionType": transactionType,
		})

		if rbErr := s.savingsRepo.UpdateBalance(ctx, sbAccountID, oldBalance); rbErr != nil {
			logger.Error("savings transaction service balance restore failed", rbErr, logger.Fields{
				"sbAccountId": sbAccountID,
			})
			return commons.ErrorResponse[models.TransactionResponse](
				commons.ReasonPartialFailure,
				"Failed to record transaction and the balance restore also failed; manual reconciliation is required",
			), err
		}

		logger.Info("savings transaction service balance restored", logger.Fields{
			"sbAccountId": sbAccountID,
		})
		return commons.ErrorResponse[models.TransactionResponse](
			commons.ReasonPartialFailure,
			"Failed to record transaction; the balance was restored",
		), err
	}

	response := models.TransactionResponse{
		SBAccountID:     sbAccountID,
		TransactionType: string(transactionType),
		Amount:          amount,
		OldBalance:      oldBalance,
		NewBalance:      newBalance,
		TransactionDate: time.Now(),
	}

	logger.Info("savings transaction service success", logger.Fields{
		"sbAccountId":     sbAccountID,
		"transactionType": transactionType,
		"newBalance":      newBalance.StringFixed(2),
	})

	message := "Deposit successful"
	if transactionType == domain.TransactionTypeWithdraw {
		message = "Withdrawal successful"
	}
	return commons.SuccessResponse(message, response), nil
}

func (s *SavingsTransactionService) GetTransactionHistory(ctx context.Context, sbAccountID string, startDate, endDate *time.Time) (commons.Response[[]models.TransactionHistoryItem], error) {
	trimmed := strings.TrimSpace(sbAccountID)
	if trimmed == "" {
		err := fmt.Errorf("sbAccountId is required")
		return commons.ErrorResponse[[]models.TransactionHistoryItem](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	var transactions []domain.SavingsTransaction
	var err error
	if startDate != nil && endDate != nil {
		transactions, err = s.txnRepo.ListByDateRange(ctx, trimmed, *startDate, *endDate)
	} else {
		transactions, err = s.txnRepo.ListByAccountID(ctx, trimmed)
	}
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionHistoryItem](commons.ReasonPersistence, "failed to load transaction history"), err
	}

	items := make([]models.TransactionHistoryItem, 0, len(transactions))
	for _, txn := range transactions {
		items = append(items, models.TransactionHistoryItem{
			TransactionID:   txn.TransactionID,
			SBAccountID:     txn.SBAccountID,
			TransactionDate: txn.TransactionDate,
			TransactionType: string(txn.TransactionType),
			Amount:          txn.Amount,
		})
	}

	return commons.SuccessResponse("transaction history", items), nil
}

func (s *SavingsTransactionService) GetAccountSummary(ctx context.Context, sbAccountID string) (commons.Response[models.AccountSummaryResponse], error) {
	trimmed := strings.TrimSpace(sbAccountID)
	if trimmed == "" {
		err := fmt.Errorf("sbAccountId is required")
		return commons.ErrorResponse[models.AccountSummaryResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	account, err := s.savingsRepo.GetByID(ctx, trimmed)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountSummaryResponse](commons.ReasonNotFound, fmt.Sprintf("Savings account %s not found", trimmed)), err
		}
		return commons.ErrorResponse[models.AccountSummaryResponse](commons.ReasonPersistence, "failed to load account summary"), err
	}

	totalDeposits, err := s.txnRepo.TotalByType(ctx, trimmed, domain.TransactionTypeDeposit)
	if err != nil {
		return commons.ErrorResponse[models.AccountSummaryResponse](commons.ReasonPersistence, "failed to load account summary"), err
	}
	totalWithdrawals, err := s.txnRepo.TotalByType(ctx, trimmed, domain.TransactionTypeWithdraw)
	if err != nil {
		return commons.ErrorResponse[models.AccountSummaryResponse](commons.ReasonPersistence, "failed to load account summary"), err
	}
	count, err := s.txnRepo.CountByAccountID(ctx, trimmed)
	if err != nil {
		return commons.ErrorResponse[models.AccountSummaryResponse](commons.ReasonPersistence, "failed to load account summary"), err
	}
	lastDate, err := s.txnRepo.LastTransactionDate(ctx, trimmed)
	if err != nil {
		return commons.ErrorResponse[models.AccountSummaryResponse](commons.ReasonPersistence, "failed to load account summary"), err
	}

	summary := models.AccountSummaryResponse{
		SBAccountID:         account.SBAccountID,
		CustomerID:          account.CustomerID,
		CurrentBalance:      account.Balance,
		TotalDeposits:       totalDeposits,
		TotalWithdrawals:    totalWithdrawals,
		TransactionCount:    count,
		LastTransactionDate: lastDate,
	}

	return commons.SuccessResponse("account summary", summary), nil
}

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

// FundTransferService moves money between two savings accounts. The debit and
// credit are separate writes: when the credit fails the sender's balance is
// rewritten to its pre-debit value and the transfer is treated as not having
// happened. Once both balances have moved, the audit writes (ledger entries
// and the transfer record) are best-effort and never undo the movement.
type FundTransferService struct {
	transferRepo repo_interfaces.FundTransferRepository
	savingsRepo  repo_interfaces.SavingsAccountRepository
	accountRepo  repo_interfaces.AccountRepository
	txnRepo      repo_interfaces.SavingsTransactionRepository
	locker       *AccountLocker
}

func NewFundTransferService(
	transferRepo repo_interfaces.FundTransferRepository,
	savingsRepo repo_interfaces.SavingsAccountRepository,
	accountRepo repo_interfaces.AccountRepository,
	txnRepo repo_interfaces.SavingsTransactionRepository,
	locker *AccountLocker,
) *FundTransferService {
	return &FundTransferService{
		transferRepo: transferRepo,
		savingsRepo:  savingsRepo,
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		locker:       locker,
	}
}

func (s *FundTransferService) TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("fund transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	if req.Amount.LessThan(minTransferAmount) {
		err := fmt.Errorf("minimum transfer amount is %s", minTransferAmount.StringFixed(2))
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}
	if req.Amount.GreaterThan(maxTransferAmount) {
		err := fmt.Errorf("maximum transfer amount is %s per transaction", maxTransferAmount.StringFixed(2))
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	fromCustomerID := strings.TrimSpace(req.FromCustomerID)
	toAccountID := strings.TrimSpace(req.ToAccountID)

	sender, err := s.savingsRepo.GetByCustomerID(ctx, fromCustomerID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse](commons.ReasonNotFound, "You don't have a savings account"), err
		}
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonPersistence, "failed to process transfer", "Unable to process transfer right now"), err
	}

	if sender.SBAccountID == toAccountID {
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonBusinessRule, "Cannot transfer to your own account"), commons.ErrSelfTransfer
	}

	unlock := s.locker.Lock(sender.SBAccountID, toAccountID)
	defer unlock()

	// Re-read both balances under the locks; nothing from before the lock is
	// trusted for the computation.
	sender, err = s.savingsRepo.GetByID(ctx, sender.SBAccountID)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonPersistence, "failed to process transfer", "Unable to process transfer right now"), err
	}
	receiver, err := s.savingsRepo.GetByID(ctx, toAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse](commons.ReasonNotFound, fmt.Sprintf("Recipient account %s not found", toAccountID)), err
		}
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonPersistence, "failed to process transfer", "Unable to process transfer right now"), err
	}

	if err := s.checkAccountOpen(ctx, sender.SBAccountID, "Your savings account is not active"); err != nil {
		if errors.Is(err, commons.ErrAccountNotActive) {
			return commons.ErrorResponse[models.TransferResponse](commons.ReasonBusinessRule, "Your savings account is not active"), err
		}
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonPersistence, "failed to process transfer", "Unable to process transfer right now"), err
	}
	if err := s.checkAccountOpen(ctx, receiver.SBAccountID, "Recipient account is not active"); err != nil {
		if errors.Is(err, commons.ErrAccountNotActive) {
			return commons.ErrorResponse[models.TransferResponse](commons.ReasonBusinessRule, "Recipient account is not active"), err
		}
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonPersistence, "failed to process transfer", "Unable to process transfer right now"), err
	}

	if sender.Balance.Sub(req.Amount).LessThan(minMaintainedBalance) {
		message := fmt.Sprintf(
			"Insufficient balance. You must maintain a minimum balance of %s. Available for transfer: %s",
			minMaintainedBalance.StringFixed(2),
			maxDebitable(sender.Balance).StringFixed(2),
		)
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonBusinessRule, message), commons.ErrInsufficientBalance
	}

	todayTotal, err := s.transferRepo.DailyTransferTotal(ctx, sender.SBAccountID, time.Now())
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonPersistence, "failed to process transfer", "Unable to process transfer right now"), err
	}
	if todayTotal.Add(req.Amount).GreaterThan(dailyTransferLimit) {
		remaining := dailyTransferLimit.Sub(todayTotal)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		message := fmt.Sprintf(
			"Daily transfer limit of %s exceeded. You can transfer %s more today",
			dailyTransferLimit.StringFixed(2),
			remaining.StringFixed(2),
		)
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonBusinessRule, message), commons.ErrDailyLimitExceeded
	}

	oldFromBalance := sender.Balance
	newFromBalance := oldFromBalance.Sub(req.Amount)
	newToBalance := receiver.Balance.Add(req.Amount)

	if err := s.savingsRepo.UpdateBalance(ctx, sender.SBAccountID, newFromBalance); err != nil {
		return commons.ErrorResponse[models.TransferResponse](commons.ReasonPersistence, "Failed to deduct amount from your account"), err
	}

	if err := s.savingsRepo.UpdateBalance(ctx, receiver.SBAccountID, newToBalance); err != nil {
		logger.Error("fund transfer service credit failed, restoring sender balance", err, logger.Fields{
			"fromAccountId": sender.SBAccountID,
			"toAccountId":   receiver.SBAccountID,
		})

		if rbErr := s.savingsRepo.UpdateBalance(ctx, sender.SBAccountID, oldFromBalance); rbErr != nil {
			logger.Error("fund transfer service sender balance restore failed", rbErr, logger.Fields{
				"fromAccountId": sender.SBAccountID,
			})
			return commons.ErrorResponse[models.TransferResponse](
				commons.ReasonPartialFailure,
				"Failed to credit the recipient and the sender balance restore also failed; manual reconciliation is required",
			), err
		}

		s.recordTransferAttempt(ctx, sender, receiver, req.Amount, domain.TransferStatusFailed, "credit failed, sender balance restored")
		return commons.ErrorResponse[models.TransferResponse](
			commons.ReasonPartialFailure,
			"Failed to credit amount to the recipient account; your balance was restored",
		), err
	}

	// Money has moved; everything from here on is audit trail.
	if err := s.txnRepo.Record(ctx, sender.SBAccountID, domain.TransactionTypeTransferDebit, req.Amount); err != nil {
		logger.Error("fund transfer service debit ledger record failed", err, logger.Fields{
			"fromAccountId": sender.SBAccountID,
		})
	}
	if err := s.txnRepo.Record(ctx, receiver.SBAccountID, domain.TransactionTypeTransferCredit, req.Amount); err != nil {
		logger.Error("fund transfer service credit ledger record failed", err, logger.Fields{
			"toAccountId": receiver.SBAccountID,
		})
	}

	remarks := strings.TrimSpace(req.Remarks)
	if remarks == "" {
		remarks = fmt.Sprintf("Transfer to %s", receiver.CustomerID)
	}

	response := models.TransferResponse{
		FromAccountID:  sender.SBAccountID,
		ToAccountID:    receiver.SBAccountID,
		Amount:         req.Amount,
		NewFromBalance: newFromBalance,
		NewToBalance:   newToBalance,
		Remarks:        remarks,
		Status:         string(domain.TransferStatusSuccess),
	}

	if _, err := s.transferRepo.Create(ctx, domain.FundTransfer{
		FromAccountID:  sender.SBAccountID,
		ToAccountID:    receiver.SBAccountID,
		Amount:         req.Amount,
		FromCustomerID: sender.CustomerID,
		ToCustomerID:   receiver.CustomerID,
		Status:         domain.TransferStatusSuccess,
		Remarks:        remarks,
	}); err != nil {
		logger.Error("fund transfer service transfer record failed after completed transfer", err, logger.Fields{
			"fromAccountId": sender.SBAccountID,
			"toAccountId":   receiver.SBAccountID,
		})
		return commons.SuccessResponse("Transfer completed but the transfer record could not be saved", response), nil
	}

	logger.Info("fund transfer service transfer success", logger.Fields{
		"fromAccountId":  sender.SBAccountID,
		"toAccountId":    receiver.SBAccountID,
		"amount":         req.Amount.StringFixed(2),
		"newFromBalance": newFromBalance.StringFixed(2),
	})

	return commons.SuccessResponse("Transfer successful", response), nil
}

func (s *FundTransferService) GetTransferHistory(ctx context.Context, customerID string) (commons.Response[[]models.TransferHistoryItem], error) {
	trimmed := strings.TrimSpace(customerID)
	if trimmed == "" {
		err := fmt.Errorf("customerId is required")
		return commons.ErrorResponse[[]models.TransferHistoryItem](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	transfers, err := s.transferRepo.ListByCustomerID(ctx, trimmed)
	if err != nil {
		return commons.ErrorResponse[[]models.TransferHistoryItem](commons.ReasonPersistence, "failed to load transfer history"), err
	}

	items := make([]models.TransferHistoryItem, 0, len(transfers))
	for _, transfer := range transfers {
		items = append(items, models.TransferHistoryItem{
			TransferID:     transfer.TransferID,
			FromAccountID:  transfer.FromAccountID,
			ToAccountID:    transfer.ToAccountID,
			Amount:         transfer.Amount,
			TransferDate:   transfer.TransferDate,
			FromCustomerID: transfer.FromCustomerID,
			ToCustomerID:   transfer.ToCustomerID,
			Status:         string(transfer.Status),
			Remarks:        transfer.Remarks,
			IsSent:         transfer.FromCustomerID == trimmed,
			IsReceived:     transfer.ToCustomerID == trimmed,
		})
	}

	return commons.SuccessResponse("transfer history", items), nil
}

func (s *FundTransferService) checkAccountOpen(ctx context.Context, accountID string, detail string) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.Status != domain.AccountStatusOpen {
		logger.Info("fund transfer service account not active", logger.Fields{
			"accountId": accountID,
			"status":    account.Status,
			"detail":    detail,
		})
		return commons.ErrAccountNotActive
	}
	return nil
}

func (s *FundTransferService) recordTransferAttempt(
	ctx context.Context,
	sender domain.SavingsAccount,
	receiver domain.SavingsAccount,
	amount decimal.Decimal,
	status domain.TransferStatus,
	remarks string,
) {
	if _, err := s.transferRepo.Create(ctx, domain.FundTransfer{
		FromAccountID:  sender.SBAccountID,
		ToAccountID:    receiver.SBAccountID,
		Amount:         amount,
		FromCustomerID: sender.CustomerID,
		ToCustomerID:   receiver.CustomerID,
		Status:         status,
		Remarks:        remarks,
	}); err != nil {
		logger.Error("fund transfer service attempt record failed", err, logger.Fields{
			"fromAccountId": sender.SBAccountID,
			"status":        status,
		})
	}
}

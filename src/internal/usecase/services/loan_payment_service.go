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

// LoanPaymentService applies loan repayments funded from the payer's savings
// account. The loan's outstanding balance lives in the loan transaction
// chain, never on the loan account row.
type LoanPaymentService struct {
	loanRepo    repo_interfaces.LoanAccountRepository
	loanTxnRepo repo_interfaces.LoanTransactionRepository
	savingsRepo repo_interfaces.SavingsAccountRepository
	txnRepo     repo_interfaces.SavingsTransactionRepository
	accountRepo repo_interfaces.AccountRepository
	locker      *AccountLocker
}

func NewLoanPaymentService(
	loanRepo repo_interfaces.LoanAccountRepository,
	loanTxnRepo repo_interfaces.LoanTransactionRepository,
	savingsRepo repo_interfaces.SavingsAccountRepository,
	txnRepo repo_interfaces.SavingsTransactionRepository,
	accountRepo repo_interfaces.AccountRepository,
	locker *AccountLocker,
) *LoanPaymentService {
	return &LoanPaymentService{
		loanRepo:    loanRepo,
		loanTxnRepo: loanTxnRepo,
		savingsRepo: savingsRepo,
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		locker:      locker,
	}
}

func (s *LoanPaymentService) PayEMI(ctx context.Context, req models.LoanPaymentRequest) (commons.Response[models.LoanPaymentResponse], error) {
	logger.Info("loan payment service payment request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	paymentType := domain.LoanPaymentType(strings.ToUpper(strings.TrimSpace(req.PaymentType)))
	if paymentType == "" {
		paymentType = domain.LoanPaymentTypeEMI
	}

	lnAccountID := strings.TrimSpace(req.LNAccountID)
	customerID := strings.TrimSpace(req.CustomerID)

	loan, err := s.loanRepo.GetByID(ctx, lnAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonNotFound, fmt.Sprintf("Loan account %s not found", lnAccountID)), err
		}
		return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonPersistence, "failed to process payment", "Unable to process payment right now"), err
	}

	if loan.CustomerID != customerID {
		return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonBusinessRule, "This loan account does not belong to you"), commons.ErrUnauthorized
	}

	savings, err := s.savingsRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonNotFound, "You need a savings account to pay your loan"), err
		}
		return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonPersistence, "failed to process payment", "Unable to process payment right now"), err
	}

	unlock := s.locker.Lock(savings.SBAccountID, lnAccountID)
	defer unlock()

	savings, err = s.savingsRepo.GetByID(ctx, savings.SBAccountID)
	if err != nil {
		return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonPersistence, "failed to process payment", "Unable to process payment right now"), err
	}

	oldBalance := savings.Balance
	newBalance := oldBalance.Sub(req.Amount)
	if newBalance.LessThan(minMaintainedBalance) {
		message := fmt.Sprintf(
			"Insufficient balance in your savings account. A minimum balance of %s must be maintained. Maximum payable: %s",
			minMaintainedBalance.StringFixed(2),
			maxDebitable(oldBalance).StringFixed(2),
		)
		return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonBusinessRule, message), commons.ErrInsufficientBalance
	}

	outstanding, err := s.currentOutstanding(ctx, loan)
	if err != nil {
		return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonPersistence, "failed to process payment", "Unable to process payment right now"), err
	}

	if outstanding.IsZero() {
		return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonBusinessRule, "This loan is already fully paid"), commons.ErrAccountAlreadyClosed
	}

	if paymentType == domain.LoanPaymentTypeEMI && req.Amount.LessThan(loan.EMI) && req.Amount.LessThan(outstanding) {
		message := fmt.Sprintf("EMI payment must be at least %s", loan.EMI.StringFixed(2))
		return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonBusinessRule, message), commons.ErrInsufficientBalance
	}

	if req.Amount.GreaterThan(outstanding) {
		message := fmt.Sprintf("Payment exceeds the outstanding balance. Outstanding: %s", outstanding.StringFixed(2))
		return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonBusinessRule, message), commons.ErrInsufficientBalance
	}

	newOutstanding := outstanding.Sub(req.Amount)
	if newOutstanding.IsZero() {
		paymentType = domain.LoanPaymentTypeFullClosure
	}

	if err := s.savingsRepo.UpdateBalance(ctx, savings.SBAccountID, newBalance); err != nil {
		return commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonPersistence, "Failed to debit your savings account"), err
	}

	if _, err := s.loanTxnRepo.Create(ctx, domain.LoanTransaction{
		LNAccountID: lnAccountID,
		EMIDate:     time.Now(),
		Amount:      req.Amount,
		Outstanding: newOutstanding,
		PaymentType: paymentType,
		PaidBy:      customerID,
	}); err != nil {
		logger.Error("loan payment service loan record failed, restoring savings balance", err, logger.Fields{
			"lnAccountId": lnAccountID,
			"sbAccountId": savings.SBAccountID,
		})

		if rbErr := s.savingsRepo.UpdateBalance(ctx, savings.SBAccountID, oldBalance); rbErr != nil {
			logger.Error("loan payment service savings balance restore failed", rbErr, logger.Fields{
				"sbAccountId": savings.SBAccountID,
			})
			return commons.ErrorResponse[models.LoanPaymentResponse](
				commons.ReasonPartialFailure,
				"Failed to record the loan payment and the savings balance restore also failed; manual reconciliation is required",
			), err
		}

		return commons.ErrorResponse[models.LoanPaymentResponse](
			commons.ReasonPartialFailure,
			"Failed to record the loan payment; your savings balance was restored",
		), err
	}

	// The payment is committed; the savings ledger entry is audit trail only.
	if err := s.txnRepo.Record(ctx, savings.SBAccountID, domain.TransactionTypeLoanPayment, req.Amount); err != nil {
		logger.Error("loan payment service savings ledger record failed", err, logger.Fields{
			"sbAccountId": savings.SBAccountID,
		})
	}

	response := models.LoanPaymentResponse{
		LNAccountID:    lnAccountID,
		AmountPaid:     req.Amount,
		NewOutstanding: newOutstanding,
		PaymentType:    string(paymentType),
	}

	message := "Payment successful"
	if newOutstanding.IsZero() {
		if err := s.accountRepo.Close(ctx, lnAccountID); err != nil {
			logger.Error("loan payment service account close failed after full repayment", err, logger.Fields{
				"lnAccountId": lnAccountID,
			})
			message = "Loan fully paid but the account could not be marked closed"
		} else {
			response.AccountClosed = true
			message = "Loan fully paid, account closed"
		}
	}

	logger.Info("loan payment service payment success", logger.Fields{
		"lnAccountId":    lnAccountID,
		"amount":         req.Amount.StringFixed(2),
		"newOutstanding": newOutstanding.StringFixed(2),
	})

	return commons.SuccessResponse(message, response), nil
}

// GetOutstanding reports the loan's current outstanding balance.
func (s *LoanPaymentService) GetOutstanding(ctx context.Context, lnAccountID string) (commons.Response[decimal.Decimal], error) {
	trimmed := strings.TrimSpace(lnAccountID)
	if trimmed == "" {
		err := fmt.Errorf("lnAccountId is required")
		return commons.ErrorResponse[decimal.Decimal](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	loan, err := s.loanRepo.GetByID(ctx, trimmed)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[decimal.Decimal](commons.ReasonNotFound, fmt.Sprintf("Loan account %s not found", trimmed)), err
		}
		return commons.ErrorResponse[decimal.Decimal](commons.ReasonPersistence, "failed to load outstanding balance"), err
	}

	outstanding, err := s.currentOutstanding(ctx, loan)
	if err != nil {
		return commons.ErrorResponse[decimal.Decimal](commons.ReasonPersistence, "failed to load outstanding balance"), err
	}

	return commons.SuccessResponse("outstanding balance", outstanding), nil
}

func (s *LoanPaymentService) GetPaymentHistory(ctx context.Context, lnAccountID string) (commons.Response[[]domain.LoanTransaction], error) {
	trimmed := strings.TrimSpace(lnAccountID)
	if trimmed == "" {
		err := fmt.Errorf("lnAccountId is required")
		return commons.ErrorResponse[[]domain.LoanTransaction](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	transactions, err := s.loanTxnRepo.ListByLoanID(ctx, trimmed)
	if err != nil {
		return commons.ErrorResponse[[]domain.LoanTransaction](commons.ReasonPersistence, "failed to load payment history"), err
	}

	return commons.SuccessResponse("payment history", transactions), nil
}

// currentOutstanding is the Outstanding of the latest loan transaction, or
// the full principal when no payment has been recorded yet.
func (s *LoanPaymentService) currentOutstanding(ctx context.Context, loan domain.LoanAccount) (decimal.Decimal, error) {
	latest, err := s.loanTxnRepo.GetLatestByLoanID(ctx, loan.LNAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return loan.LoanAmount, nil
		}
		return decimal.Decimal{}, err
	}
	return latest.Outstanding, nil
}

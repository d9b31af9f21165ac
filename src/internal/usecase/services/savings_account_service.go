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
	"github.com/MrFranklink/bank-backoffice/src/internal/idgen"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
)

// SavingsAccountService opens and closes savings accounts. A customer holds
// at most one savings account, and only bank staff may open accounts.
type SavingsAccountService struct {
	accountRepo  repo_interfaces.AccountRepository
	savingsRepo  repo_interfaces.SavingsAccountRepository
	txnRepo      repo_interfaces.SavingsTransactionRepository
	customerRepo repo_interfaces.CustomerRepository
	ids          idgen.Allocator
}

func NewSavingsAccountService(
	accountRepo repo_interfaces.AccountRepository,
	savingsRepo repo_interfaces.SavingsAccountRepository,
	txnRepo repo_interfaces.SavingsTransactionRepository,
	customerRepo repo_interfaces.CustomerRepository,
	ids idgen.Allocator,
) *SavingsAccountService {
	return &SavingsAccountService{
		accountRepo:  accountRepo,
		savingsRepo:  savingsRepo,
		txnRepo:      txnRepo,
		customerRepo: customerRepo,
		ids:          ids,
	}
}

func (s *SavingsAccountService) OpenSavings(ctx context.Context, req models.OpenSavingsRequest) (commons.Response[models.OpenSavingsResponse], error) {
	logger.Info("savings account service open request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.OpenSavingsResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	role := domain.Role(strings.ToUpper(strings.TrimSpace(req.OpenedByRole)))
	if !role.CanOpenAccounts() {
		return commons.ErrorResponse[models.OpenSavingsResponse](commons.ReasonBusinessRule, "Only bank staff can open accounts"), commons.ErrUnauthorized
	}

	if req.InitialDeposit.LessThan(minSavingsDeposit) {
		err := fmt.Errorf("minimum initial deposit is %s", minSavingsDeposit.StringFixed(2))
		return commons.ErrorResponse[models.OpenSavingsResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	exists, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		return commons.ErrorResponse[models.OpenSavingsResponse](commons.ReasonPersistence, "failed to open account", "Unable to open account right now"), err
	}
	if !exists {
		return commons.ErrorResponse[models.OpenSavingsResponse](commons.ReasonNotFound, fmt.Sprintf("Customer %s not found", customerID)), commons.ErrRecordNotFound
	}

	hasAccount, err := s.savingsRepo.CustomerHasSavingsAccount(ctx, customerID)
	if err != nil {
		return commons.ErrorResponse[models.OpenSavingsResponse](commons.ReasonPersistence, "failed to open account", "Unable to open account right now"), err
	}
	if hasAccount {
		return commons.ErrorResponse[models.OpenSavingsResponse](commons.ReasonBusinessRule, "Customer already has a savings account"), errors.New("customer already has a savings account")
	}

	sbAccountID := s.ids.SavingsAccountID()

	if _, err := s.accountRepo.Create(ctx, domain.Account{
		AccountID:    sbAccountID,
		AccountType:  domain.AccountTypeSaving,
		CustomerID:   customerID,
		OpenedBy:     strings.TrimSpace(req.OpenedBy),
		OpenedByRole: role,
		OpenDate:     time.Now(),
		Status:       domain.AccountStatusOpen,
	}); err != nil {
		return commons.ErrorResponse[models.OpenSavingsResponse](commons.ReasonPersistence, "Failed to create account record"), err
	}

	account, err := s.savingsRepo.Create(ctx, domain.SavingsAccount{
		SBAccountID: sbAccountID,
		CustomerID:  customerID,
		Balance:     req.InitialDeposit,
	})
	if err != nil {
		return commons.ErrorResponse[models.OpenSavingsResponse](commons.ReasonPersistence, "Failed to create savings account"), err
	}

	if err := s.txnRepo.Record(ctx, sbAccountID, domain.TransactionTypeDeposit, req.InitialDeposit); err != nil {
		logger.Error("savings account service opening deposit record failed", err, logger.Fields{
			"sbAccountId": sbAccountID,
		})
	}

	logger.Info("savings account service account opened", logger.Fields{
		"sbAccountId": sbAccountID,
		"customerId":  customerID,
	})

	return commons.SuccessResponse("Savings account opened", models.OpenSavingsResponse{
		SBAccountID: account.SBAccountID,
		CustomerID:  account.CustomerID,
		Balance:     account.Balance,
	}), nil
}

func (s *SavingsAccountService) CloseSavings(ctx context.Context, sbAccountID string) (commons.Response[models.CloseAccountResponse], error) {
	trimmed := strings.TrimSpace(sbAccountID)
	if trimmed == "" {
		err := fmt.Errorf("sbAccountId is required")
		return commons.ErrorResponse[models.CloseAccountResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	account, err := s.savingsRepo.GetByID(ctx, trimmed)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CloseAccountResponse](commons.ReasonNotFound, fmt.Sprintf("Savings account %s not found", trimmed)), err
		}
		return commons.ErrorResponse[models.CloseAccountResponse](commons.ReasonPersistence, "failed to close account"), err
	}

	if err := s.accountRepo.Close(ctx, trimmed); err != nil {
		if errors.Is(err, commons.ErrAccountAlreadyClosed) {
			return commons.ErrorResponse[models.CloseAccountResponse](commons.ReasonBusinessRule, "Account is already closed"), err
		}
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CloseAccountResponse](commons.ReasonNotFound, fmt.Sprintf("Account %s not found", trimmed)), err
		}
		return commons.ErrorResponse[models.CloseAccountResponse](commons.ReasonPersistence, "failed to close account"), err
	}

	logger.Info("savings account service account closed", logger.Fields{
		"sbAccountId": trimmed,
	})

	return commons.SuccessResponse("Account closed", models.CloseAccountResponse{
		AccountID:    trimmed,
		FinalBalance: account.Balance,
	}), nil
}

func (s *SavingsAccountService) GetAccountsByCustomer(ctx context.Context, customerID string) (commons.Response[[]domain.Account], error) {
	trimmed := strings.TrimSpace(customerID)
	if trimmed == "" {
		err := fmt.Errorf("customerId is required")
		return commons.ErrorResponse[[]domain.Account](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	accounts, err := s.accountRepo.GetByCustomerID(ctx, trimmed)
	if err != nil {
		return commons.ErrorResponse[[]domain.Account](commons.ReasonPersistence, "failed to load accounts"), err
	}

	return commons.SuccessResponse("accounts", accounts), nil
}

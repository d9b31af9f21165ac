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

// FixedDepositService opens fixed deposit accounts. The rate, end date and
// maturity amount are all fixed at opening time.
type FixedDepositService struct {
	accountRepo  repo_interfaces.AccountRepository
	fdRepo       repo_interfaces.FixedDepositRepository
	customerRepo repo_interfaces.CustomerRepository
	ids          idgen.Allocator
}

func NewFixedDepositService(
	accountRepo repo_interfaces.AccountRepository,
	fdRepo repo_interfaces.FixedDepositRepository,
	customerRepo repo_interfaces.CustomerRepository,
	ids idgen.Allocator,
) *FixedDepositService {
	return &FixedDepositService{
		accountRepo:  accountRepo,
		fdRepo:       fdRepo,
		customerRepo: customerRepo,
		ids:          ids,
	}
}

func (s *FixedDepositService) OpenFixedDeposit(ctx context.Context, req models.OpenFixedDepositRequest) (commons.Response[models.OpenFixedDepositResponse], error) {
	logger.Info("fixed deposit service open request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.OpenFixedDepositResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	role := domain.Role(strings.ToUpper(strings.TrimSpace(req.OpenedByRole)))
	if !role.CanOpenAccounts() {
		return commons.ErrorResponse[models.OpenFixedDepositResponse](commons.ReasonBusinessRule, "Only bank staff can open accounts"), commons.ErrUnauthorized
	}

	if req.Amount.LessThan(minFixedDeposit) {
		err := fmt.Errorf("minimum fixed deposit amount is %s", minFixedDeposit.StringFixed(2))
		return commons.ErrorResponse[models.OpenFixedDepositResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	if req.TenureMonths > maxFixedDepositTenureMonths {
		err := fmt.Errorf("maximum tenure is %d months", maxFixedDepositTenureMonths)
		return commons.ErrorResponse[models.OpenFixedDepositResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	startDate, err := time.Parse(dateLayout, strings.TrimSpace(req.StartDate))
	if err != nil {
		err = fmt.Errorf("startDate must be in YYYY-MM-DD format")
		return commons.ErrorResponse[models.OpenFixedDepositResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.OpenFixedDepositResponse](commons.ReasonNotFound, fmt.Sprintf("Customer %s not found", customerID)), err
		}
		return commons.ErrorResponse[models.OpenFixedDepositResponse](commons.ReasonPersistence, "failed to open fixed deposit", "Unable to open fixed deposit right now"), err
	}

	senior := customer.IsSeniorCitizen(time.Now())
	rate := fixedDepositRate(req.TenureMonths, senior)
	maturity := fixedDepositMaturity(req.Amount, rate, req.TenureMonths)
	endDate := startDate.AddDate(0, req.TenureMonths, 0)

	fdAccountID := s.ids.FixedDepositAccountID()

	if _, err := s.accountRepo.Create(ctx, domain.Account{
		AccountID:    fdAccountID,
		AccountType:  domain.AccountTypeFixedDeposit,
		CustomerID:   customerID,
		OpenedBy:     strings.TrimSpace(req.OpenedBy),
		OpenedByRole: role,
		OpenDate:     time.Now(),
		Status:       domain.AccountStatusOpen,
	}); err != nil {
		return commons.ErrorResponse[models.OpenFixedDepositResponse](commons.ReasonPersistence, "Failed to create account record"), err
	}

	fd, err := s.fdRepo.Create(ctx, domain.FixedDepositAccount{
		FDAccountID:    fdAccountID,
		CustomerID:     customerID,
		Amount:         req.Amount,
		StartDate:      startDate,
		EndDate:        endDate,
		InterestRate:   rate,
		MaturityAmount: maturity,
	})
	if err != nil {
		return commons.ErrorResponse[models.OpenFixedDepositResponse](commons.ReasonPersistence, "Failed to create fixed deposit account"), err
	}

	logger.Info("fixed deposit service account opened", logger.Fields{
		"fdAccountId": fdAccountID,
		"customerId":  customerID,
		"rate":        rate.StringFixed(2),
	})

	return commons.SuccessResponse("Fixed deposit account opened", models.OpenFixedDepositResponse{
		FDAccountID:    fd.FDAccountID,
		CustomerID:     fd.CustomerID,
		Amount:         fd.Amount,
		InterestRate:   fd.InterestRate,
		MaturityAmount: fd.MaturityAmount,
		EndDate:        fd.EndDate.Format(dateLayout),
	}), nil
}

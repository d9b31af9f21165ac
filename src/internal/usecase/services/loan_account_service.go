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

const dateLayout = "2006-01-02"

// LoanAccountService opens loan accounts. The sanctioned amount, rate and EMI
// are fixed at opening; repayments run through LoanPaymentService.
type LoanAccountService struct {
	accountRepo  repo_interfaces.AccountRepository
	loanRepo     repo_interfaces.LoanAccountRepository
	customerRepo repo_interfaces.CustomerRepository
	ids          idgen.Allocator
}

func NewLoanAccountService(
	accountRepo repo_interfaces.AccountRepository,
	loanRepo repo_interfaces.LoanAccountRepository,
	customerRepo repo_interfaces.CustomerRepository,
	ids idgen.Allocator,
) *LoanAccountService {
	return &LoanAccountService{
		accountRepo:  accountRepo,
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
		ids:          ids,
	}
}

func (s *LoanAccountService) OpenLoan(ctx context.Context, req models.OpenLoanRequest) (commons.Response[models.OpenLoanResponse], error) {
	logger.Info("loan account service open request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	role := domain.Role(strings.ToUpper(strings.TrimSpace(req.OpenedByRole)))
	if !role.CanOpenAccounts() {
		return commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonBusinessRule, "Only bank staff can open accounts"), commons.ErrUnauthorized
	}

	if req.LoanAmount.LessThan(minLoanAmount) {
		err := fmt.Errorf("minimum loan amount is %s", minLoanAmount.StringFixed(2))
		return commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	startDate, err := time.Parse(dateLayout, strings.TrimSpace(req.StartDate))
	if err != nil {
		err = fmt.Errorf("startDate must be in YYYY-MM-DD format")
		return commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonNotFound, fmt.Sprintf("Customer %s not found", customerID)), err
		}
		return commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonPersistence, "failed to open loan", "Unable to open loan right now"), err
	}

	senior := customer.IsSeniorCitizen(time.Now())
	if senior && req.LoanAmount.GreaterThan(seniorLoanCap) {
		message := fmt.Sprintf("Senior citizen loans are capped at %s", seniorLoanCap.StringFixed(2))
		return commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonBusinessRule, message), errors.New("loan amount above senior citizen cap")
	}

	rate := loanInterestRate(req.LoanAmount, senior)
	emi := computeEMI(req.LoanAmount, rate, req.TenureMonths)

	maxEMI := req.MonthlySalary.Mul(emiSalaryRatio)
	if emi.GreaterThan(maxEMI) {
		message := fmt.Sprintf(
			"EMI %s exceeds 60%% of the monthly salary. Maximum affordable EMI: %s",
			emi.StringFixed(2),
			maxEMI.StringFixed(2),
		)
		return commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonBusinessRule, message), errors.New("emi exceeds salary ceiling")
	}

	lnAccountID := s.ids.LoanAccountID()

	if _, err := s.accountRepo.Create(ctx, domain.Account{
		AccountID:    lnAccountID,
		AccountType:  domain.AccountTypeLoan,
		CustomerID:   customerID,
		OpenedBy:     strings.TrimSpace(req.OpenedBy),
		OpenedByRole: role,
		OpenDate:     time.Now(),
		Status:       domain.AccountStatusOpen,
	}); err != nil {
		return commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonPersistence, "Failed to create account record"), err
	}

	loan, err := s.loanRepo.Create(ctx, domain.LoanAccount{
		LNAccountID:  lnAccountID,
		CustomerID:   customerID,
		LoanAmount:   req.LoanAmount,
		StartDate:    startDate,
		TenureMonths: req.TenureMonths,
		InterestRate: rate,
		EMI:          emi,
	})
	if err != nil {
		return commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonPersistence, "Failed to create loan account"), err
	}

	logger.Info("loan account service loan opened", logger.Fields{
		"lnAccountId": lnAccountID,
		"customerId":  customerID,
		"rate":        rate.StringFixed(2),
		"emi":         emi.StringFixed(2),
	})

	return commons.SuccessResponse("Loan account opened", models.OpenLoanResponse{
		LNAccountID:  loan.LNAccountID,
		LoanAmount:   loan.LoanAmount,
		InterestRate: loan.InterestRate,
		TenureMonths: loan.TenureMonths,
		EMI:          loan.EMI,
	}), nil
}

package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
)

type LoanAccountRepository struct {
	db *sql.DB
}

func NewLoanAccountRepository(db *sql.DB) *LoanAccountRepository {
	return &LoanAccountRepository{db: db}
}

func (r *LoanAccountRepository) Create(ctx context.Context, account domain.LoanAccount) (domain.LoanAccount, error) {
	logger.Info("loan account repository create", logger.Fields{
		"lnAccountId": account.LNAccountID,
		"customerId":  account.CustomerID,
		"loanAmount":  account.LoanAmount.StringFixed(2),
	})

	const query = `
INSERT INTO loan_accounts (
	ln_account_id,
	customer_id,
	loan_amount,
	start_date,
	tenure_months,
	ln_roi,
	emi
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := r.db.ExecContext(
		ctx,
		query,
		account.LNAccountID,
		account.CustomerID,
		account.LoanAmount.StringFixed(2),
		account.StartDate,
		account.TenureMonths,
		account.InterestRate.String(),
		account.EMI.StringFixed(2),
	); err != nil {
		logger.Error("loan account repository create failed", err, logger.Fields{
			"lnAccountId": account.LNAccountID,
		})
		return domain.LoanAccount{}, fmt.Errorf("create loan account: %w", err)
	}

	logger.Info("loan account repository create success", logger.Fields{
		"lnAccountId": account.LNAccountID,
	})

	return account, nil
}

func (r *LoanAccountRepository) GetByID(ctx context.Context, lnAccountID string) (domain.LoanAccount, error) {
	const query = `
SELECT ln_account_id, customer_id, loan_amount, start_date, tenure_months, ln_roi, emi
FROM loan_accounts
WHERE ln_account_id = $1`

	var account domain.LoanAccount
	if err := r.db.QueryRowContext(ctx, query, lnAccountID).Scan(
		&account.LNAccountID,
		&account.CustomerID,
		&account.LoanAmount,
		&account.StartDate,
		&account.TenureMonths,
		&account.InterestRate,
		&account.EMI,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("loan account repository record not found", logger.Fields{
				"lnAccountId": lnAccountID,
			})
			return domain.LoanAccount{}, commons.ErrRecordNotFound
		}
		logger.Error("loan account repository get failed", err, logger.Fields{
			"lnAccountId": lnAccountID,
		})
		return domain.LoanAccount{}, fmt.Errorf("get loan account by id: %w", err)
	}

	return account, nil
}

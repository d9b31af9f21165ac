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

type FixedDepositRepository struct {
	db *sql.DB
}

func NewFixedDepositRepository(db *sql.DB) *FixedDepositRepository {
	return &FixedDepositRepository{db: db}
}

func (r *FixedDepositRepository) Create(ctx context.Context, account domain.FixedDepositAccount) (domain.FixedDepositAccount, error) {
	logger.Info("fixed deposit repository create", logger.Fields{
		"fdAccountId": account.FDAccountID,
		"customerId":  account.CustomerID,
		"amount":      account.Amount.StringFixed(2),
	})

	const query = `
INSERT INTO fixed_deposit_accounts (
	fd_account_id,
	customer_id,
	amount,
	start_date,
	end_date,
	fd_roi,
	maturity_amount
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := r.db.ExecContext(
		ctx,
		query,
		account.FDAccountID,
		account.CustomerID,
		account.Amount.StringFixed(2),
		account.StartDate,
		account.EndDate,
		account.InterestRate.String(),
		account.MaturityAmount.StringFixed(2),
	); err != nil {
		logger.Error("fixed deposit repository create failed", err, logger.Fields{
			"fdAccountId": account.FDAccountID,
		})
		return domain.FixedDepositAccount{}, fmt.Errorf("create fixed deposit account: %w", err)
	}

	logger.Info("fixed deposit repository create success", logger.Fields{
		"fdAccountId": account.FDAccountID,
	})

	return account, nil
}

func (r *FixedDepositRepository) GetByID(ctx context.Context, fdAccountID string) (domain.FixedDepositAccount, error) {
	const query = `
SELECT fd_account_id, customer_id, amount, start_date, end_date, fd_roi, maturity_amount
FROM fixed_deposit_accounts
WHERE fd_account_id = $1`

	var account domain.FixedDepositAccount
	if err := r.db.QueryRowContext(ctx, query, fdAccountID).Scan(
		&account.FDAccountID,
		&account.CustomerID,
		&account.Amount,
		&account.StartDate,
		&account.EndDate,
		&account.InterestRate,
		&account.MaturityAmount,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("fixed deposit repository record not found", logger.Fields{
				"fdAccountId": fdAccountID,
			})
			return domain.FixedDepositAccount{}, commons.ErrRecordNotFound
		}
		logger.Error("fixed deposit repository get failed", err, logger.Fields{
			"fdAccountId": fdAccountID,
		})
		return domain.FixedDepositAccount{}, fmt.Errorf("get fixed deposit by id: %w", err)
	}

	return account, nil
}

package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
	"github.com/shopspring/decimal"
)

type SavingsAccountRepository struct {
	db *sql.DB
}

func NewSavingsAccountRepository(db *sql.DB) *SavingsAccountRepository {
	return &SavingsAccountRepository{db: db}
}

func (r *SavingsAccountRepository) Create(ctx context.Context, account domain.SavingsAccount) (domain.SavingsAccount, error) {
	logger.Info("savings account repository create", logger.Fields{
		"sbAccountId": account.SBAccountID,
		"customerId":  account.CustomerID,
	})

	const query = `
INSERT INTO savings_accounts (
	sb_account_id,
	customer_id,
	balance
) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(
		ctx,
		query,
		account.SBAccountID,
		account.CustomerID,
		account.Balance.StringFixed(2),
	); err != nil {
		logger.Error("savings account repository create failed", err, logger.Fields{
			"sbAccountId": account.SBAccountID,
		})
		return domain.SavingsAccount{}, fmt.Errorf("create savings account: %w", err)
	}

	logger.Info("savings account repository create success", logger.Fields{
		"sbAccountId": account.SBAccountID,
	})

	return account, nil
}

func (r *SavingsAccountRepository) GetByID(ctx context.Context, sbAccountID string) (domain.SavingsAccount, error) {
	const query = `
SELECT sb_account_id, customer_id, balance
FROM savings_accounts
WHERE sb_account_id = $1`

	var account domain.SavingsAccount
	if err := r.db.QueryRowContext(ctx, query, sbAccountID).Scan(
		&account.SBAccountID,
		&account.CustomerID,
		&account.Balance,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("savings account repository record not found", logger.Fields{
				"sbAccountId": sbAccountID,
			})
			return domain.SavingsAccount{}, commons.ErrRecordNotFound
		}
		logger.Error("savings account repository get failed", err, logger.Fields{
			"sbAccountId": sbAccountID,
		})
		return domain.SavingsAccount{}, fmt.Errorf("get savings account by id: %w", err)
	}

	return account, nil
}

func (r *SavingsAccountRepository) GetByCustomerID(ctx context.Context, customerID string) (domain.SavingsAccount, error) {
	const query = `
SELECT sb_account_id, customer_id, balance
FROM savings_accounts
WHERE customer_id = $1`

	var account domain.SavingsAccount
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&account.SBAccountID,
		&account.CustomerID,
		&account.Balance,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("savings account repository record not found for customer", logger.Fields{
				"customerId": customerID,
			})
			return domain.SavingsAccount{}, commons.ErrRecordNotFound
		}
		logger.Error("savings account repository get by customer failed", err, logger.Fields{
			"customerId": customerID,
		})
		return domain.SavingsAccount{}, fmt.Errorf("get savings account by customer id: %w", err)
	}

	return account, nil
}

func (r *SavingsAccountRepository) CustomerHasSavingsAccount(ctx context.Context, customerID string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM savings_accounts
	WHERE customer_id = $1
)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(&exists); err != nil {
		logger.Error("savings account repository customer check failed", err, logger.Fields{
			"customerId": customerID,
		})
		return false, fmt.Errorf("check customer savings account: %w", err)
	}

	return exists, nil
}

// UpdateBalance overwrites the stored balance with a value the engine
// computed from a fresh read while holding the account lock.
func (r *SavingsAccountRepository) UpdateBalance(ctx context.Context, sbAccountID string, newBalance decimal.Decimal) error {
	logger.Info("savings account repository update balance", logger.Fields{
		"sbAccountId": sbAccountID,
		"newBalance":  newBalance.StringFixed(2),
	})

	const query = `
UPDATE savings_accounts
SET balance = $2::numeric
WHERE sb_account_id = $1`

	result, err := r.db.ExecContext(ctx, query, sbAccountID, newBalance.StringFixed(2))
	if err != nil {
		logger.Error("savings account repository update balance failed", err, logger.Fields{
			"sbAccountId": sbAccountID,
		})
		return fmt.Errorf("update savings balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update savings balance rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return commons.ErrRecordNotFound
	}

	logger.Info("savings account repository update balance success", logger.Fields{
		"sbAccountId": sbAccountID,
	})
	return nil
}

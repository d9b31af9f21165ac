package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"accountId":   account.AccountID,
		"accountType": account.AccountType,
		"customerId":  account.CustomerID,
	})

	const query = `
INSERT INTO accounts (
	account_id,
	account_type,
	customer_id,
	opened_by,
	opened_by_role,
	status
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING open_date`

	var openDate time.Time
	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.AccountID,
		account.AccountType,
		account.CustomerID,
		account.OpenedBy,
		account.OpenedByRole,
		domain.AccountStatusOpen,
	).Scan(&openDate); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"accountId": account.AccountID,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.OpenDate = openDate
	account.Status = domain.AccountStatusOpen

	logger.Info("account repository create success", logger.Fields{
		"accountId": account.AccountID,
	})

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID string) (domain.Account, error) {
	const query = `
SELECT account_id, account_type, customer_id, opened_by, opened_by_role, open_date, status, closed_date
FROM accounts
WHERE account_id = $1`

	var account domain.Account
	var closedDate sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&account.AccountID,
		&account.AccountType,
		&account.CustomerID,
		&account.OpenedBy,
		&account.OpenedByRole,
		&account.OpenDate,
		&account.Status,
		&closedDate,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountId": accountID,
			})
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountId": accountID,
		})
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	if closedDate.Valid {
		value := closedDate.Time
		account.ClosedDate = &value
	}

	return account, nil
}

func (r *AccountRepository) Exists(ctx context.Context, accountID string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM accounts
	WHERE account_id = $1
)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&exists); err != nil {
		logger.Error("account repository exists check failed", err, logger.Fields{
			"accountId": accountID,
		})
		return false, fmt.Errorf("check account exists: %w", err)
	}

	return exists, nil
}

func (r *AccountRepository) GetByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error) {
	const query = `
SELECT account_id, account_type, customer_id, opened_by, opened_by_role, open_date, status, closed_date
FROM accounts
WHERE customer_id = $1
ORDER BY open_date DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		logger.Error("account repository list by customer failed", err, logger.Fields{
			"customerId": customerID,
		})
		return nil, fmt.Errorf("list accounts by customer id: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		var closedDate sql.NullTime
		if err := rows.Scan(
			&account.AccountID,
			&account.AccountType,
			&account.CustomerID,
			&account.OpenedBy,
			&account.OpenedByRole,
			&account.OpenDate,
			&account.Status,
			&closedDate,
		); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		if closedDate.Valid {
			value := closedDate.Time
			account.ClosedDate = &value
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

// Close transitions an OPEN account to CLOSED and stamps the closed date.
// Closing an already CLOSED account is an error, not a second transition.
func (r *AccountRepository) Close(ctx context.Context, accountID string) error {
	logger.Info("account repository close", logger.Fields{
		"accountId": accountID,
	})

	const query = `
UPDATE accounts
SET status = $2,
    closed_date = NOW()
WHERE account_id = $1
  AND status = $3`

	result, err := r.db.ExecContext(ctx, query, accountID, domain.AccountStatusClosed, domain.AccountStatusOpen)
	if err != nil {
		logger.Error("account repository close failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("close account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("close account rows affected: %w", err)
	}

	if rowsAffected == 0 {
		exists, getErr := r.Exists(ctx, accountID)
		if getErr != nil {
			return getErr
		}
		if !exists {
			return commons.ErrRecordNotFound
		}
		return commons.ErrAccountAlreadyClosed
	}

	logger.Info("account repository close success", logger.Fields{
		"accountId": accountID,
	})
	return nil
}

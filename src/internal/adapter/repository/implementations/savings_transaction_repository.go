package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
	"github.com/shopspring/decimal"
)

type SavingsTransactionRepository struct {
	db *sql.DB
}

func NewSavingsTransactionRepository(db *sql.DB) *SavingsTransactionRepository {
	return &SavingsTransactionRepository{db: db}
}

func (r *SavingsTransactionRepository) Record(ctx context.Context, sbAccountID string, transactionType domain.TransactionType, amount decimal.Decimal) error {
	logger.Info("savings transaction repository record", logger.Fields{
		"sbAccountId":     sbAccountID,
		"transactionType": transactionType,
		"amount":          amount.StringFixed(2),
	})

	const query = `
INSERT INTO savings_transactions (
	sb_account_id,
	transaction_type,
	amount
) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, sbAccountID, transactionType, amount.StringFixed(2)); err != nil {
		logger.Error("savings transaction repository record failed", err, logger.Fields{
			"sbAccountId":     sbAccountID,
			"transactionType": transactionType,
		})
		return fmt.Errorf("record savings transaction: %w", err)
	}

	return nil
}

func (r *SavingsTransactionRepository) ListByAccountID(ctx context.Context, sbAccountID string) ([]domain.SavingsTransaction, error) {
	const query = `
SELECT transaction_id, sb_account_id, transaction_date, transaction_type, amount
FROM savings_transactions
WHERE sb_account_id = $1
ORDER BY transaction_date DESC`

	return r.queryTransactions(ctx, query, sbAccountID)
}

func (r *SavingsTransactionRepository) ListByDateRange(ctx context.Context, sbAccountID string, startDate, endDate time.Time) ([]domain.SavingsTransaction, error) {
	const query = `
SELECT transaction_id, sb_account_id, transaction_date, transaction_type, amount
FROM savings_transactions
WHERE sb_account_id = $1
  AND transaction_date >= $2
  AND transaction_date <= $3
ORDER BY transaction_date DESC`

	return r.queryTransactions(ctx, query, sbAccountID, startDate, endDate)
}

func (r *SavingsTransactionRepository) TotalByType(ctx context.Context, sbAccountID string, transactionType domain.TransactionType) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(amount), 0)
FROM savings_transactions
WHERE sb_account_id = $1
  AND transaction_type = $2`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, sbAccountID, transactionType).Scan(&total); err != nil {
		logger.Error("savings transaction repository total by type failed", err, logger.Fields{
			"sbAccountId":     sbAccountID,
			"transactionType": transactionType,
		})
		return decimal.Zero, fmt.Errorf("sum savings transactions: %w", err)
	}

	return total, nil
}

func (r *SavingsTransactionRepository) CountByAccountID(ctx context.Context, sbAccountID string) (int64, error) {
	const query = `
SELECT COUNT(1)
FROM savings_transactions
WHERE sb_account_id = $1`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, sbAccountID).Scan(&count); err != nil {
		logger.Error("savings transaction repository count failed", err, logger.Fields{
			"sbAccountId": sbAccountID,
		})
		return 0, fmt.Errorf("count savings transactions: %w", err)
	}

	return count, nil
}

func (r *SavingsTransactionRepository) LastTransactionDate(ctx context.Context, sbAccountID string) (*time.Time, error) {
	const query = `
SELECT transaction_date
FROM savings_transactions
WHERE sb_account_id = $1
ORDER BY transaction_date DESC
LIMIT 1`

	var last time.Time
	if err := r.db.QueryRowContext(ctx, query, sbAccountID).Scan(&last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("savings transaction repository last date failed", err, logger.Fields{
			"sbAccountId": sbAccountID,
		})
		return nil, fmt.Errorf("get last transaction date: %w", err)
	}

	return &last, nil
}

func (r *SavingsTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.SavingsTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("savings transaction repository query failed", err, nil)
		return nil, fmt.Errorf("query savings transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.SavingsTransaction, 0)
	for rows.Next() {
		var txn domain.SavingsTransaction
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.SBAccountID,
			&txn.TransactionDate,
			&txn.TransactionType,
			&txn.Amount,
		); err != nil {
			return nil, fmt.Errorf("scan savings transaction row: %w", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate savings transaction rows: %w", err)
	}

	return transactions, nil
}

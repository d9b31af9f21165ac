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

type LoanTransactionRepository struct {
	db *sql.DB
}

func NewLoanTransactionRepository(db *sql.DB) *LoanTransactionRepository {
	return &LoanTransactionRepository{db: db}
}

func (r *LoanTransactionRepository) Create(ctx context.Context, transaction domain.LoanTransaction) (domain.LoanTransaction, error) {
	logger.Info("loan transaction repository create", logger.Fields{
		"lnAccountId": transaction.LNAccountID,
		"amount":      transaction.Amount.StringFixed(2),
		"outstanding": transaction.Outstanding.StringFixed(2),
		"paymentType": transaction.PaymentType,
	})

	const query = `
INSERT INTO loan_transactions (
	ln_account_id,
	amount,
	outstanding,
	payment_type,
	paid_by
) VALUES ($1, $2, $3, $4, $5)
RETURNING transaction_id, emi_date`

	var id int64
	var emiDate time.Time
	if err := r.db.QueryRowContext(
		ctx,
		query,
		transaction.LNAccountID,
		transaction.Amount.StringFixed(2),
		transaction.Outstanding.StringFixed(2),
		transaction.PaymentType,
		transaction.PaidBy,
	).Scan(&id, &emiDate); err != nil {
		logger.Error("loan transaction repository create failed", err, logger.Fields{
			"lnAccountId": transaction.LNAccountID,
		})
		return domain.LoanTransaction{}, fmt.Errorf("create loan transaction: %w", err)
	}

	transaction.TransactionID = id
	transaction.EMIDate = emiDate

	logger.Info("loan transaction repository create success", logger.Fields{
		"lnAccountId":   transaction.LNAccountID,
		"transactionId": transaction.TransactionID,
	})

	return transaction, nil
}

// GetLatestByLoanID returns the most recent payment row; its Outstanding
// field is the loan's current balance.
func (r *LoanTransactionRepository) GetLatestByLoanID(ctx context.Context, lnAccountID string) (domain.LoanTransaction, error) {
	const query = `
SELECT transaction_id, ln_account_id, emi_date, amount, outstanding, payment_type, paid_by
FROM loan_transactions
WHERE ln_account_id = $1
ORDER BY emi_date DESC, transaction_id DESC
LIMIT 1`

	var transaction domain.LoanTransaction
	if err := r.db.QueryRowContext(ctx, query, lnAccountID).Scan(
		&transaction.TransactionID,
		&transaction.LNAccountID,
		&transaction.EMIDate,
		&transaction.Amount,
		&transaction.Outstanding,
		&transaction.PaymentType,
		&transaction.PaidBy,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LoanTransaction{}, commons.ErrRecordNotFound
		}
		logger.Error("loan transaction repository get latest failed", err, logger.Fields{
			"lnAccountId": lnAccountID,
		})
		return domain.LoanTransaction{}, fmt.Errorf("get latest loan transaction: %w", err)
	}

	return transaction, nil
}

func (r *LoanTransactionRepository) ListByLoanID(ctx context.Context, lnAccountID string) ([]domain.LoanTransaction, error) {
	const query = `
SELECT transaction_id, ln_account_id, emi_date, amount, outstanding, payment_type, paid_by
FROM loan_transactions
WHERE ln_account_id = $1
ORDER BY emi_date DESC, transaction_id DESC`

	rows, err := r.db.QueryContext(ctx, query, lnAccountID)
	if err != nil {
		logger.Error("loan transaction repository list failed", err, logger.Fields{
			"lnAccountId": lnAccountID,
		})
		return nil, fmt.Errorf("list loan transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.LoanTransaction, 0)
	for rows.Next() {
		var transaction domain.LoanTransaction
		if err := rows.Scan(
			&transaction.TransactionID,
			&transaction.LNAccountID,
			&transaction.EMIDate,
			&transaction.Amount,
			&transaction.Outstanding,
			&transaction.PaymentType,
			&transaction.PaidBy,
		); err != nil {
			return nil, fmt.Errorf("scan loan transaction row: %w", err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loan transaction rows: %w", err)
	}

	return transactions, nil
}

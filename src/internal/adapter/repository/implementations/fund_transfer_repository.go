package implementations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
	"github.com/shopspring/decimal"
)

type FundTransferRepository struct {
	db *sql.DB
}

func NewFundTransferRepository(db *sql.DB) *FundTransferRepository {
	return &FundTransferRepository{db: db}
}

func (r *FundTransferRepository) Create(ctx context.Context, transfer domain.FundTransfer) (domain.FundTransfer, error) {
	logger.Info("fund transfer repository create", logger.Fields{
		"fromAccountId": transfer.FromAccountID,
		"toAccountId":   transfer.ToAccountID,
		"amount":        transfer.Amount.StringFixed(2),
		"status":        transfer.Status,
	})

	const query = `
INSERT INTO fund_transfers (
	from_account_id,
	to_account_id,
	amount,
	from_customer_id,
	to_customer_id,
	status,
	remarks
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING transfer_id, transfer_date`

	var id int64
	var transferDate time.Time
	if err := r.db.QueryRowContext(
		ctx,
		query,
		transfer.FromAccountID,
		transfer.ToAccountID,
		transfer.Amount.StringFixed(2),
		transfer.FromCustomerID,
		transfer.ToCustomerID,
		transfer.Status,
		transfer.Remarks,
	).Scan(&id, &transferDate); err != nil {
		logger.Error("fund transfer repository create failed", err, logger.Fields{
			"fromAccountId": transfer.FromAccountID,
			"toAccountId":   transfer.ToAccountID,
		})
		return domain.FundTransfer{}, fmt.Errorf("create fund transfer: %w", err)
	}

	transfer.TransferID = id
	transfer.TransferDate = transferDate

	logger.Info("fund transfer repository create success", logger.Fields{
		"transferId": transfer.TransferID,
	})

	return transfer, nil
}

func (r *FundTransferRepository) ListByCustomerID(ctx context.Context, customerID string) ([]domain.FundTransfer, error) {
	const query = `
SELECT transfer_id, from_account_id, to_account_id, amount, transfer_date, from_customer_id, to_customer_id, status, remarks
FROM fund_transfers
WHERE from_customer_id = $1
   OR to_customer_id = $1
ORDER BY transfer_date DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		logger.Error("fund transfer repository list by customer failed", err, logger.Fields{
			"customerId": customerID,
		})
		return nil, fmt.Errorf("list fund transfers by customer: %w", err)
	}
	defer rows.Close()

	transfers := make([]domain.FundTransfer, 0)
	for rows.Next() {
		var transfer domain.FundTransfer
		if err := rows.Scan(
			&transfer.TransferID,
			&transfer.FromAccountID,
			&transfer.ToAccountID,
			&transfer.Amount,
			&transfer.TransferDate,
			&transfer.FromCustomerID,
			&transfer.ToCustomerID,
			&transfer.Status,
			&transfer.Remarks,
		); err != nil {
			return nil, fmt.Errorf("scan fund transfer row: %w", err)
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fund transfer rows: %w", err)
	}

	return transfers, nil
}

// DailyTransferTotal only counts SUCCESS rows; failed attempts never consume
// the sender's daily allowance.
func (r *FundTransferRepository) DailyTransferTotal(ctx context.Context, fromAccountID string, day time.Time) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(amount), 0)
FROM fund_transfers
WHERE from_account_id = $1
  AND status = $2
  AND transfer_date >= $3
  AND transfer_date < $4`

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, fromAccountID, domain.TransferStatusSuccess, dayStart, dayEnd).Scan(&total); err != nil {
		logger.Error("fund transfer repository daily total failed", err, logger.Fields{
			"fromAccountId": fromAccountID,
		})
		return decimal.Zero, fmt.Errorf("sum daily transfers: %w", err)
	}

	return total, nil
}

package repo_interfaces

import (
	"context"
	"time"

	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/shopspring/decimal"
)

// SavingsTransactionRepository appends to the savings ledger. Records are
// append-only; there is no update or delete.
type SavingsTransactionRepository interface {
	Record(ctx context.Context, sbAccountID string, transactionType domain.TransactionType, amount decimal.Decimal) error
	ListByAccountID(ctx context.Context, sbAccountID string) ([]domain.SavingsTransaction, error)
	ListByDateRange(ctx context.Context, sbAccountID string, startDate, endDate time.Time) ([]domain.SavingsTransaction, error)
	TotalByType(ctx context.Context, sbAccountID string, transactionType domain.TransactionType) (decimal.Decimal, error)
	CountByAccountID(ctx context.Context, sbAccountID string) (int64, error)
	LastTransactionDate(ctx context.Context, sbAccountID string) (*time.Time, error)
}

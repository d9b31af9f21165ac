package repo_interfaces

import (
	"context"

	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
)

// LoanTransactionRepository appends to the loan payment chain. The latest row
// carries the loan's current outstanding balance.
type LoanTransactionRepository interface {
	Create(ctx context.Context, transaction domain.LoanTransaction) (domain.LoanTransaction, error)
	GetLatestByLoanID(ctx context.Context, lnAccountID string) (domain.LoanTransaction, error)
	ListByLoanID(ctx context.Context, lnAccountID string) ([]domain.LoanTransaction, error)
}

package repo_interfaces

import (
	"context"

	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/shopspring/decimal"
)

// SavingsAccountRepository owns savings balances. Engines never cache a
// balance across calls; every operation re-reads before computing.
type SavingsAccountRepository interface {
	Create(ctx context.Context, account domain.SavingsAccount) (domain.SavingsAccount, error)
	GetByID(ctx context.Context, sbAccountID string) (domain.SavingsAccount, error)
	GetByCustomerID(ctx context.Context, customerID string) (domain.SavingsAccount, error)
	CustomerHasSavingsAccount(ctx context.Context, customerID string) (bool, error)
	UpdateBalance(ctx context.Context, sbAccountID string, newBalance decimal.Decimal) error
}

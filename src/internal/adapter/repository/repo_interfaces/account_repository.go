package repo_interfaces

import (
	"context"

	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
)

// AccountRepository is the account directory: it resolves identifiers to
// type, owner and status, and owns the OPEN -> CLOSED transition.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, accountID string) (domain.Account, error)
	Exists(ctx context.Context, accountID string) (bool, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error)
	Close(ctx context.Context, accountID string) error
}

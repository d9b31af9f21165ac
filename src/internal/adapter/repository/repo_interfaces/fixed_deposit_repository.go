package repo_interfaces

import (
	"context"

	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
)

type FixedDepositRepository interface {
	Create(ctx context.Context, account domain.FixedDepositAccount) (domain.FixedDepositAccount, error)
	GetByID(ctx context.Context, fdAccountID string) (domain.FixedDepositAccount, error)
}

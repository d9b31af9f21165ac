package repo_interfaces

import (
	"context"

	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
)

type LoanAccountRepository interface {
	Create(ctx context.Context, account domain.LoanAccount) (domain.LoanAccount, error)
	GetByID(ctx context.Context, lnAccountID string) (domain.LoanAccount, error)
}

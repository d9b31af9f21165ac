package repo_interfaces

import (
	"context"
	"time"

	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/shopspring/decimal"
)

type FundTransferRepository interface {
	Create(ctx context.Context, transfer domain.FundTransfer) (domain.FundTransfer, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]domain.FundTransfer, error)
	// DailyTransferTotal sums the SUCCESS transfers sent from the account on
	// the calendar day containing the given instant.
	DailyTransferTotal(ctx context.Context, fromAccountID string, day time.Time) (decimal.Decimal, error)
}

package repo_interfaces

import (
	"context"

	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
)

type CustomerRepository interface {
	GetByID(ctx context.Context, customerID string) (domain.Customer, error)
	Exists(ctx context.Context, customerID string) (bool, error)
}

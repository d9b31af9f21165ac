package repo_interfaces

import (
	"context"

	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
)

type UserLoginRepository interface {
	GetByUsername(ctx context.Context, username string) (domain.UserLogin, error)
	UpdatePasswordHash(ctx context.Context, username string, passwordHash string) error
}

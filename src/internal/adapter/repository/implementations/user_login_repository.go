package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
)

type UserLoginRepository struct {
	db *sql.DB
}

func NewUserLoginRepository(db *sql.DB) *UserLoginRepository {
	return &UserLoginRepository{db: db}
}

func (r *UserLoginRepository) GetByUsername(ctx context.Context, username string) (domain.UserLogin, error) {
	const query = `
SELECT username, password_hash, role, party_id
FROM user_logins
WHERE username = $1`

	var login domain.UserLogin
	if err := r.db.QueryRowContext(ctx, query, username).Scan(
		&login.Username,
		&login.PasswordHash,
		&login.Role,
		&login.PartyID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("user login repository record not found", logger.Fields{
				"username": username,
			})
			return domain.UserLogin{}, commons.ErrRecordNotFound
		}
		logger.Error("user login repository get failed", err, logger.Fields{
			"username": username,
		})
		return domain.UserLogin{}, fmt.Errorf("get user login by username: %w", err)
	}

	return login, nil
}

func (r *UserLoginRepository) UpdatePasswordHash(ctx context.Context, username string, passwordHash string) error {
	logger.Info("user login repository update password", logger.Fields{
		"username": username,
	})

	const query = `
UPDATE user_logins
SET password_hash = $2
WHERE username = $1`

	result, err := r.db.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		logger.Error("user login repository update password failed", err, logger.Fields{
			"username": username,
		})
		return fmt.Errorf("update password hash: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password hash rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return commons.ErrRecordNotFound
	}

	return nil
}

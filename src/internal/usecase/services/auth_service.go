package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/http/models"
	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/repository/repo_interfaces"
	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
)

// AuthService verifies login credentials and handles password changes.
// Passwords are stored as bcrypt hashes; a failed lookup and a failed hash
// comparison both produce the same response so usernames cannot be probed.
type AuthService struct {
	userRepo repo_interfaces.UserLoginRepository
}

func NewAuthService(userRepo repo_interfaces.UserLoginRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("auth service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoginResponse](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	username := strings.TrimSpace(req.Username)
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoginResponse](commons.ReasonBusinessRule, "Invalid username or password"), commons.ErrUnauthorized
		}
		return commons.ErrorResponse[models.LoginResponse](commons.ReasonPersistence, "failed to process login"), err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Info("auth service password mismatch", logger.Fields{
			"username": username,
		})
		return commons.ErrorResponse[models.LoginResponse](commons.ReasonBusinessRule, "Invalid username or password"), commons.ErrUnauthorized
	}

	return commons.SuccessResponse("Login successful", models.LoginResponse{
		Username: user.Username,
		Role:     string(user.Role),
		PartyID:  user.PartyID,
	}), nil
}

func (s *AuthService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (commons.Response[struct{}], error) {
	logger.Info("auth service change password request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[struct{}](commons.ReasonValidation, "validation failed", err.Error()), err
	}

	username := strings.TrimSpace(req.Username)
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}](commons.ReasonBusinessRule, "Invalid username or password"), commons.ErrUnauthorized
		}
		return commons.ErrorResponse[struct{}](commons.ReasonPersistence, "failed to change password"), err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return commons.ErrorResponse[struct{}](commons.ReasonBusinessRule, "Invalid username or password"), commons.ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return commons.ErrorResponse[struct{}](commons.ReasonPersistence, "failed to change password"), err
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, username, string(hash)); err != nil {
		return commons.ErrorResponse[struct{}](commons.ReasonPersistence, "failed to change password"), err
	}

	logger.Info("auth service password changed", logger.Fields{
		"username": username,
	})

	return commons.SuccessResponse("Password changed", struct{}{}), nil
}

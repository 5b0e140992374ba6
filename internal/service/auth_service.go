package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/eftah/restaurant-service/internal/auth"
	"github.com/eftah/restaurant-service/internal/config"
	"github.com/eftah/restaurant-service/internal/domain"
	"github.com/eftah/restaurant-service/internal/repository"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

// AuthService verifies credentials, mints session tokens and rewrites
// password hashes. All credential failures surface the same error so callers
// cannot enumerate accounts.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// Authenticate verifies an email/password pair and returns the principal.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*auth.Principal, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewInvalidCredentials()
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}

	// Accounts without a stored hash (e.g. social-only) cannot log in with a
	// password; indistinguishable from a wrong password on purpose.
	if user.PasswordHash == "" {
		return nil, apperrors.NewInvalidCredentials()
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}

	return &auth.Principal{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// IssueToken mints a self-contained session token for the principal.
func (s *AuthService) IssueToken(principal *auth.Principal) (string, error) {
	token, _, err := s.tokenMgr.GenerateToken(*principal)
	return token, err
}

// ChangePassword re-verifies the current password before rewriting the hash.
// Outstanding tokens stay valid until natural expiry.
func (s *AuthService) ChangePassword(ctx context.Context, principalID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return apperrors.NewValidationError("current and new password required", nil)
	}

	user, err := s.users.GetByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewInvalidCredentials()
		}
		return apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewInvalidCredentials()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// EnsureAdmin creates the configured admin account when it does not exist.
// Run once at startup.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg config.AuthConfig) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	if _, err := s.users.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("admin account created", zap.String("email", cfg.AdminEmail))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

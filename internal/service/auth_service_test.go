package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eftah/restaurant-service/internal/auth"
	"github.com/eftah/restaurant-service/internal/config"
	"github.com/eftah/restaurant-service/internal/domain"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

type memoryUserRepo struct {
	users map[string]*domain.User // keyed by email
	seq   int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*domain.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.seq++
	user.ID = fmt.Sprintf("u-%d", r.seq)
	r.users[user.Email] = user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func testAuthService(t *testing.T, repo *memoryUserRepo) *AuthService {
	t.Helper()
	cfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}
	return NewAuthService(cfg, repo, zap.NewNop())
}

func seedUser(t *testing.T, repo *memoryUserRepo, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{Name: "Test User", Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestAuthenticateSuccess(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(t, repo, "admin@example.com", "s3cret", domain.RoleAdmin)
	svc := testAuthService(t, repo)

	principal, err := svc.Authenticate(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", principal.Email)
	assert.Equal(t, domain.RoleAdmin, principal.Role)
	assert.True(t, principal.IsAdmin())
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(t, repo, "admin@example.com", "s3cret", domain.RoleAdmin)
	repo.users["social@example.com"] = &domain.User{ID: "u-social", Email: "social@example.com"}
	svc := testAuthService(t, repo)

	cases := map[string]struct {
		email, password string
	}{
		"wrong password": {"admin@example.com", "wrong"},
		"unknown email":  {"nobody@example.com", "s3cret"},
		"empty password": {"admin@example.com", ""},
		"no stored hash": {"social@example.com", "whatever"},
	}

	var messages []string
	for name, tc := range cases {
		_, err := svc.Authenticate(context.Background(), tc.email, tc.password)
		require.Error(t, err, name)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials), name)
		messages = append(messages, apperrors.ToDomainError(err).Message)
	}
	for _, msg := range messages {
		assert.Equal(t, messages[0], msg)
	}
}

func TestIssueTokenRoundTrip(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(t, repo, "admin@example.com", "s3cret", domain.RoleAdmin)
	svc := testAuthService(t, repo)

	principal, err := svc.Authenticate(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)

	token, err := svc.IssueToken(principal)
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := newMemoryUserRepo()
	user := seedUser(t, repo, "admin@example.com", "s3cret", domain.RoleAdmin)
	originalHash := user.PasswordHash
	svc := testAuthService(t, repo)

	err := svc.ChangePassword(context.Background(), user.ID, "wrong", "newpass")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials))
	assert.Equal(t, originalHash, repo.users["admin@example.com"].PasswordHash)
}

func TestChangePasswordSuccess(t *testing.T) {
	repo := newMemoryUserRepo()
	user := seedUser(t, repo, "admin@example.com", "s3cret", domain.RoleAdmin)
	svc := testAuthService(t, repo)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "s3cret", "newpass"))

	_, err := svc.Authenticate(context.Background(), "admin@example.com", "s3cret")
	assert.Error(t, err)

	principal, err := svc.Authenticate(context.Background(), "admin@example.com", "newpass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
}

func TestEnsureAdminCreatesOnce(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := testAuthService(t, repo)
	cfg := config.AuthConfig{
		AdminEmail:    "owner@example.com",
		AdminName:     "Owner",
		AdminPassword: "bootstrapped",
	}

	require.NoError(t, svc.EnsureAdmin(context.Background(), cfg))
	require.Len(t, repo.users, 1)
	assert.Equal(t, domain.RoleAdmin, repo.users["owner@example.com"].Role)

	// A second run is a no-op, not a duplicate.
	require.NoError(t, svc.EnsureAdmin(context.Background(), cfg))
	assert.Len(t, repo.users, 1)

	principal, err := svc.Authenticate(context.Background(), "owner@example.com", "bootstrapped")
	require.NoError(t, err)
	assert.True(t, principal.IsAdmin())
}

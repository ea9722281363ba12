package auth

import (
	"context"
	"testing"

	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/infrastructure/memory"
	"github.com/npochettino/sales-management-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newUseCase() *AuthUseCase {
	uc := NewAuthUseCase(memory.New().Users(), JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "test"})
	uc.cost = bcrypt.MinCost
	return uc
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Ana@Example.com ", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, entity.RoleVendedor, u.Role)
	assert.Equal(t, "ana@example.com", u.Name)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "password2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@example.com", Password: "password1", Role: entity.RoleAdmin})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ADMIN@example.com", Password: "password1"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, "test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "v@example.com", Password: "password1"})
	require.NoError(t, err)

	got, err := uc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = uc.Me(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	empty, err := uc.NeedsBootstrap(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	created, err := uc.EnsureAdmin(ctx, "", "password1")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = uc.EnsureAdmin(ctx, "admin@example.com", "password1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "otro@example.com", "password1")
	require.NoError(t, err)
	assert.False(t, created, "sólo se siembra con la base de usuarios vacía")

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

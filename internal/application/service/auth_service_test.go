package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/shopflow/internal/domain/enum"
	"github.com/sangkips/shopflow/internal/infrastructure/repository"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/sangkips/shopflow/pkg/logger"
	"github.com/sangkips/shopflow/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() *AuthService {
	kv := repository.NewMemoryStore()
	return NewAuthService(
		repository.NewSessionRepository(kv),
		utils.NewJWTManager("test-secret", time.Hour, "shopflow"),
		logger.NewNop(),
	)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService()

	out, err := auth.Login(ctx, &LoginInput{Username: "staff", Password: "anything"})
	require.NoError(t, err)
	assert.Equal(t, enum.RoleStaff, out.User.Role)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotContains(t, out.Capabilities, enum.CapabilitySettings)

	user, err := auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "staff", user.Username)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService()

	for _, name := range []string{"", "root", "ADMIN"} {
		_, err := auth.Login(ctx, &LoginInput{Username: name})
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials, name)
	}

	_, err := auth.CurrentUser(ctx)
	assert.ErrorIs(t, err, apperror.ErrNotLoggedIn)
}

func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService()

	admin, err := auth.Login(ctx, &LoginInput{Username: "admin"})
	require.NoError(t, err)

	user, err := auth.ValidateToken(ctx, admin.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, enum.RoleAdmin, user.Role)

	_, err = auth.ValidateToken(ctx, "garbage")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	// A later login replaces the single session.
	_, err = auth.Login(ctx, &LoginInput{Username: "staff"})
	require.NoError(t, err)
	_, err = auth.ValidateToken(ctx, admin.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrNotLoggedIn)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService()

	out, err := auth.Login(ctx, &LoginInput{Username: "admin"})
	require.NoError(t, err)
	require.NoError(t, auth.Logout(ctx))

	_, err = auth.ValidateToken(ctx, out.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrNotLoggedIn)
	_, err = auth.CurrentUser(ctx)
	assert.ErrorIs(t, err, apperror.ErrNotLoggedIn)
}

package auth_test

import (
	"context"
	"testing"
	"time"

	"catalogapi/internal/auth"
	"catalogapi/internal/entity"
	"catalogapi/internal/store"
	"catalogapi/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newTestService(t *testing.T) (*auth.Service, usecase.UserRepository) {
	t.Helper()
	users := store.NewMemory().UserRepo()
	return auth.NewService(testSecret, time.Hour, users), users
}

func registerUser(t *testing.T, users usecase.UserRepository, username, password string) entity.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := entity.User{Username: username, PasswordHash: hash, FavoriteGenre: "fantasy"}
	require.NoError(t, users.Create(context.Background(), &user))
	return user
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	service, users := newTestService(t)
	registerUser(t, users, "alice", "secret")

	t.Run("valid credentials", func(t *testing.T) {
		token, err := service.Login(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, wrongPasswordErr := service.Login(ctx, "alice", "nope")
		_, unknownUserErr := service.Login(ctx, "nobody", "secret")

		assert.ErrorIs(t, wrongPasswordErr, auth.ErrWrongCredentials)
		assert.ErrorIs(t, unknownUserErr, auth.ErrWrongCredentials)
		assert.Equal(t, wrongPasswordErr.Error(), unknownUserErr.Error())
	})
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()
	service, users := newTestService(t)
	registered := registerUser(t, users, "alice", "secret")

	t.Run("no credential resolves to anonymous", func(t *testing.T) {
		user, err := service.Resolve(ctx, "")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("login round trip", func(t *testing.T) {
		token, err := service.Login(ctx, "alice", "secret")
		require.NoError(t, err)

		user, err := service.Resolve(ctx, "Bearer "+token)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, registered.ID, user.ID)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("scheme is matched case-insensitively", func(t *testing.T) {
		token, err := service.Login(ctx, "alice", "secret")
		require.NoError(t, err)

		for _, scheme := range []string{"bearer ", "Bearer ", "BEARER "} {
			user, err := service.Resolve(ctx, scheme+token)
			require.NoError(t, err)
			require.NotNil(t, user)
		}
	})

	t.Run("malformed header is a hard failure, not anonymous", func(t *testing.T) {
		user, err := service.Resolve(ctx, "Token abc")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, user)
	})

	t.Run("garbage token", func(t *testing.T) {
		user, err := service.Resolve(ctx, "Bearer not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, user)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := auth.NewService(testSecret, -time.Hour, users)
		token, err := expired.Login(ctx, "alice", "secret")
		require.NoError(t, err)

		user, resolveErr := service.Resolve(ctx, "Bearer "+token)
		assert.ErrorIs(t, resolveErr, auth.ErrInvalidToken)
		assert.Nil(t, user)
	})

	t.Run("valid token for deleted subject", func(t *testing.T) {
		orphanService := auth.NewService(testSecret, time.Hour, store.NewMemory().UserRepo())
		token, err := service.Login(ctx, "alice", "secret")
		require.NoError(t, err)

		user, resolveErr := orphanService.Resolve(ctx, "Bearer "+token)
		assert.ErrorIs(t, resolveErr, auth.ErrSubjectNotFound)
		assert.Nil(t, user)
	})
}

package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"catalogapi/internal/auth"
	"catalogapi/internal/entity"
	"catalogapi/internal/httpx"
	"catalogapi/internal/pubsub"
	"catalogapi/internal/store"
	"catalogapi/internal/testutil"
	"catalogapi/internal/usecase"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	catalog *usecase.Catalog
	auth    *auth.Service
	broker  *pubsub.Broker
	users   usecase.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := store.NewMemory()
	broker := pubsub.NewBroker(4)
	return &testEnv{
		catalog: usecase.NewCatalog(mem.AuthorRepo(), mem.BookRepo(), mem.UserRepo(), broker),
		auth:    auth.NewService(testutil.Secret, time.Hour, mem.UserRepo()),
		broker:  broker,
		users:   mem.UserRepo(),
	}
}

// registerAndLogin creates a user directly in the store and returns the
// user plus a valid bearer token.
func (env *testEnv) registerAndLogin(t *testing.T, username, favoriteGenre string) (entity.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	user := entity.User{Username: username, FavoriteGenre: favoriteGenre, PasswordHash: hash}
	require.NoError(t, env.users.Create(context.Background(), &user))

	token, err := env.auth.Login(context.Background(), username, "secret")
	require.NoError(t, err)
	return user, token
}

// withIdentity wraps a handler with the identity middleware, the way the
// server wires it.
func (env *testEnv) withIdentity(handler http.HandlerFunc) http.Handler {
	return httpx.IdentityMiddleware(env.auth)(handler)
}

package httpserver_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/agentsynergy/internal/client/client"
	"github.com/dmitrijs2005/agentsynergy/internal/client/credentials"
	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
	clientservices "github.com/dmitrijs2005/agentsynergy/internal/client/services"
	"github.com/dmitrijs2005/agentsynergy/internal/client/storage"
	"github.com/dmitrijs2005/agentsynergy/internal/logging"
	"github.com/dmitrijs2005/agentsynergy/internal/server/config"
	"github.com/dmitrijs2005/agentsynergy/internal/server/httpserver"
	"github.com/dmitrijs2005/agentsynergy/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/agentsynergy/internal/server/repositories/users"
	"github.com/dmitrijs2005/agentsynergy/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stack struct {
	creds   *credentials.Store
	auth    clientservices.AuthService
	metrics *client.Metrics
}

func newBackend(t *testing.T) string {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "e2e",
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: time.Hour,
	}
	us := services.NewUserService(users.NewMemoryRepository(), refreshtokens.NewMemoryRepository(), cfg)
	ts := httptest.NewServer(httpserver.NewHTTPServer("", logging.Nop(), us, "e2e").Router())
	t.Cleanup(ts.Close)
	return ts.URL
}

func newStack(t *testing.T, baseURL string, repo storage.Repository) *stack {
	t.Helper()
	creds := credentials.NewStore(repo)
	m := client.NewMetrics(prometheus.NewRegistry())
	c, err := client.New(baseURL, creds, client.WithMetrics(m), client.WithTimeout(5*time.Second))
	require.NoError(t, err)
	return &stack{creds: creds, auth: clientservices.NewAuthService(c, creds), metrics: m}
}

func TestEndToEnd_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	baseURL := newBackend(t)
	repo := storage.NewMemoryRepository()

	s := newStack(t, baseURL, repo)
	s.auth.Initialize(ctx)
	assert.Equal(t, models.StatusUnauthenticated, s.auth.Session().Status)

	require.NoError(t, s.auth.Register(ctx, models.RegisterRequest{
		Email: "ada@example.com", Password: "password1", ConfirmPassword: "password1", FirstName: "Ada",
	}))
	sess := s.auth.Session()
	require.True(t, sess.IsAuthenticated())
	assert.Equal(t, "Ada", sess.CurrentUser.FirstName)

	refresh, err := s.creds.RefreshToken(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, refresh)

	// a second process over the same storage restores the session
	restored := newStack(t, baseURL, repo)
	restored.auth.Initialize(ctx)
	require.True(t, restored.auth.Session().IsAuthenticated())
	assert.Equal(t, "ada@example.com", restored.auth.Session().CurrentUser.Email)

	company := "Acme"
	require.NoError(t, restored.auth.UpdateProfile(ctx, models.UserUpdate{CompanyName: &company}))
	assert.Equal(t, "Acme", restored.auth.Session().CurrentUser.CompanyName)

	restored.auth.Logout(ctx)
	assert.Equal(t, models.StatusUnauthenticated, restored.auth.Session().Status)
	tok, err := restored.creds.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestEndToEnd_RefreshOnRejectedAccessToken(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, newBackend(t), storage.NewMemoryRepository())
	s.auth.Initialize(ctx)

	require.NoError(t, s.auth.Register(ctx, models.RegisterRequest{
		Email: "ada@example.com", Password: "password1", ConfirmPassword: "password1",
	}))
	oldRefresh, err := s.creds.RefreshToken(ctx)
	require.NoError(t, err)

	require.NoError(t, s.creds.SetTokens(ctx, "not-a-valid-token", ""))

	require.NoError(t, s.auth.RefreshCurrentUser(ctx))
	assert.True(t, s.auth.Session().IsAuthenticated())

	access, err := s.creds.AccessToken(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-valid-token", access)
	newRefresh, err := s.creds.RefreshToken(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, oldRefresh, newRefresh, "server rotates refresh tokens")

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Refreshes.WithLabelValues("success")))
}

func TestEndToEnd_RevokedRefreshClearsSession(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, newBackend(t), storage.NewMemoryRepository())
	s.auth.Initialize(ctx)

	require.NoError(t, s.auth.Register(ctx, models.RegisterRequest{
		Email: "ada@example.com", Password: "password1", ConfirmPassword: "password1",
	}))

	var seen []models.SessionStatus
	unsubscribe := s.auth.Subscribe(func(sess models.Session) { seen = append(seen, sess.Status) })
	defer unsubscribe()

	require.NoError(t, s.creds.SetTokens(ctx, "not-a-valid-token", "revoked"))

	err := s.auth.RefreshCurrentUser(ctx)
	require.Error(t, err)
	var expired *client.AuthExpiredError
	assert.True(t, errors.As(err, &expired))
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	assert.Equal(t, models.StatusUnauthenticated, s.auth.Session().Status)
	assert.Nil(t, s.auth.Session().CurrentUser)
	assert.Contains(t, seen, models.StatusUnauthenticated)

	u, err := s.creds.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CredentialsCleared))
}

func TestEndToEnd_WrongPassword(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, newBackend(t), storage.NewMemoryRepository())
	s.auth.Initialize(ctx)

	err := s.auth.Login(ctx, "ghost@example.com", "password1")
	var httpErr *client.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 401, httpErr.Status)
	assert.Equal(t, "Incorrect email or password", httpErr.Detail)
	assert.False(t, s.auth.Session().IsAuthenticated())
	assert.False(t, s.auth.Session().IsLoading)
}

func TestEndToEnd_DeleteAccount(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, newBackend(t), storage.NewMemoryRepository())
	s.auth.Initialize(ctx)

	require.NoError(t, s.auth.Register(ctx, models.RegisterRequest{
		Email: "ada@example.com", Password: "password1", ConfirmPassword: "password1",
	}))
	require.NoError(t, s.auth.DeleteAccount(ctx))

	sess := s.auth.Session()
	assert.Equal(t, models.StatusUnauthenticated, sess.Status)
	assert.Nil(t, sess.CurrentUser)
	tok, err := s.creds.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	err = s.auth.Login(ctx, "ada@example.com", "password1")
	var httpErr *client.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 401, httpErr.Status)
}

func TestEndToEnd_Ping(t *testing.T) {
	s := newStack(t, newBackend(t), storage.NewMemoryRepository())
	assert.NoError(t, s.auth.Ping(context.Background()))
}

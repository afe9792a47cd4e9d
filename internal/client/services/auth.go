package services

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/agentsynergy/internal/client/client"
	"github.com/dmitrijs2005/agentsynergy/internal/client/credentials"
	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
	"github.com/dmitrijs2005/agentsynergy/internal/logging"
)

// ErrNotInitialized is returned by session operations called before
// Initialize has finished.
var ErrNotInitialized = errors.New("session not initialized")

const (
	DefaultCurrentUserPath = "/auth/me"
	profilePath            = "/users/me"
)

// Listener receives a session snapshot after every change.
type Listener func(models.Session)

// AuthService owns "who is logged in".
//
// Contract:
//   - Initialize: restore the persisted session once; never fails.
//   - Login/Register: authenticate and persist tokens plus user.
//   - Logout: always ends unauthenticated, even when the server call fails.
//   - DeleteAccount: remove the account server-side, then end like Logout.
//   - RefreshCurrentUser/UpdateProfile: reload or edit the user record.
//   - Subscribe: observe every change until the returned func is called.
//
// All methods are safe for concurrent use. Listeners run on the calling
// goroutine, in registration order, with no internal lock held.
type AuthService interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context)
	DeleteAccount(ctx context.Context) error
	RefreshCurrentUser(ctx context.Context) error
	UpdateProfile(ctx context.Context, upd models.UserUpdate) error
	Subscribe(l Listener) (unsubscribe func())
	Session() models.Session
	Ping(ctx context.Context) error
}

type listenerEntry struct {
	fn Listener
}

type authService struct {
	client          APIClient
	creds           CredentialStore
	logger          logging.Logger
	currentUserPath string

	mu      sync.Mutex
	session models.Session

	lmu       sync.Mutex
	listeners []*listenerEntry
}

type AuthOption func(*authService)

// WithCurrentUserPath selects the endpoint that returns the signed-in user
// ("/auth/me" or "/users/me").
func WithCurrentUserPath(path string) AuthOption {
	return func(a *authService) {
		if path != "" {
			a.currentUserPath = path
		}
	}
}

func WithAuthLogger(l logging.Logger) AuthOption {
	return func(a *authService) { a.logger = l }
}

// NewAuthService constructs an AuthService and subscribes it to the client's
// credential-cleared signal.
func NewAuthService(c APIClient, creds CredentialStore, opts ...AuthOption) AuthService {
	a := &authService{
		client:          c,
		creds:           creds,
		logger:          logging.Nop(),
		currentUserPath: DefaultCurrentUserPath,
		session:         models.Session{Status: models.StatusUninitialized, IsLoading: true},
	}
	for _, opt := range opts {
		opt(a)
	}
	c.OnCredentialsCleared(a.onCredentialsCleared)
	return a
}

func (a *authService) Session() models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Subscribe registers l. Calling the returned func more than once is a no-op.
func (a *authService) Subscribe(l Listener) func() {
	e := &listenerEntry{fn: l}
	a.lmu.Lock()
	a.listeners = append(a.listeners, e)
	a.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.lmu.Lock()
			defer a.lmu.Unlock()
			for i, x := range a.listeners {
				if x == e {
					a.listeners = append(a.listeners[:i:i], a.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (a *authService) Initialize(ctx context.Context) {
	a.mu.Lock()
	if a.session.Status != models.StatusUninitialized {
		a.mu.Unlock()
		return
	}
	a.session.Status = models.StatusRestoring
	a.session.IsLoading = true
	snap := a.snapshotLocked()
	a.mu.Unlock()
	a.notify(snap)

	token, terr := a.creds.AccessToken(ctx)
	cached, uerr := a.creds.User(ctx)
	if err := errors.Join(terr, uerr); err != nil {
		a.logger.Warn(ctx, "stored session unreadable", "error", err)
	}

	if terr != nil || uerr != nil || token == "" || cached == nil {
		a.clearStored(ctx)
		a.finish(models.StatusUnauthenticated, nil)
		return
	}

	// show the cached user while it is verified
	a.update(func(s *models.Session) { s.CurrentUser = cached })

	fresh, err := a.fetchCurrentUser(ctx)
	if err != nil {
		a.logger.Info(ctx, "stored session rejected", "error", err)
		a.clearStored(ctx)
		a.finish(models.StatusUnauthenticated, nil)
		return
	}
	if err := a.creds.SetUser(ctx, fresh); err != nil {
		a.logger.Warn(ctx, "failed to persist user", "error", err)
	}
	a.finish(models.StatusAuthenticated, fresh)
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	if err := a.begin(); err != nil {
		return err
	}
	if err := a.login(ctx, email, password); err != nil {
		a.update(func(s *models.Session) { s.IsLoading = false })
		return err
	}
	return nil
}

func (a *authService) login(ctx context.Context, email, password string) error {
	var resp models.AuthResponse
	err := a.client.Do(ctx, &client.Request{
		Method:    http.MethodPost,
		Path:      "/auth/login",
		Body:      models.LoginRequest{Email: email, Password: password},
		Anonymous: true,
	}, &resp)
	if err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return errors.New("login response carries no access token")
	}

	user := resp.User
	pair := credentials.Pair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken, User: &user}
	if err := a.creds.Save(ctx, pair); err != nil {
		return err
	}
	a.logger.Info(ctx, "logged in", "user_id", user.ID)
	a.finish(models.StatusAuthenticated, &user)
	return nil
}

// Register creates the account and then signs in with the same credentials.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := a.begin(); err != nil {
		return err
	}

	var created models.User
	err := a.client.Do(ctx, &client.Request{
		Method:    http.MethodPost,
		Path:      "/auth/register",
		Body:      req,
		Anonymous: true,
	}, &created)
	if err == nil {
		a.logger.Info(ctx, "registered", "user_id", created.ID)
		err = a.login(ctx, req.Email, req.Password)
	}
	if err != nil {
		a.update(func(s *models.Session) { s.IsLoading = false })
		return err
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.update(func(s *models.Session) { s.IsLoading = true })

	// the server call is advisory; local state is wiped regardless
	if err := a.client.Do(ctx, &client.Request{Method: http.MethodPost, Path: "/auth/logout"}, nil); err != nil {
		a.logger.Debug(ctx, "logout request failed", "error", err)
	}
	a.clearStored(ctx)
	a.finish(models.StatusUnauthenticated, nil)
}

// DeleteAccount keeps the session when the server refuses; otherwise the
// local state is wiped as on Logout.
func (a *authService) DeleteAccount(ctx context.Context) error {
	if err := a.begin(); err != nil {
		return err
	}
	if err := a.client.Do(ctx, &client.Request{Method: http.MethodDelete, Path: profilePath}, nil); err != nil {
		a.update(func(s *models.Session) { s.IsLoading = false })
		return err
	}
	a.logger.Info(ctx, "account deleted")
	a.clearStored(ctx)
	a.finish(models.StatusUnauthenticated, nil)
	return nil
}

func (a *authService) RefreshCurrentUser(ctx context.Context) error {
	if err := a.begin(); err != nil {
		return err
	}
	user, err := a.fetchCurrentUser(ctx)
	return a.adoptUser(ctx, user, err)
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.UserUpdate) error {
	if err := a.begin(); err != nil {
		return err
	}
	var user models.User
	err := a.client.Do(ctx, &client.Request{Method: http.MethodPut, Path: profilePath, Body: upd}, &user)
	return a.adoptUser(ctx, &user, err)
}

func (a *authService) Ping(ctx context.Context) error {
	_, err := a.client.Ping(ctx)
	return err
}

func (a *authService) adoptUser(ctx context.Context, user *models.User, err error) error {
	if err == nil {
		err = a.creds.SetUser(ctx, user)
	}
	if err != nil {
		a.update(func(s *models.Session) { s.IsLoading = false })
		return err
	}
	a.finish(models.StatusAuthenticated, user)
	return nil
}

func (a *authService) fetchCurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := a.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: a.currentUserPath}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// onCredentialsCleared runs after the client gave up on an expired session.
func (a *authService) onCredentialsCleared(ctx context.Context) {
	a.logger.Info(ctx, "session expired")
	a.update(func(s *models.Session) {
		if s.Status == models.StatusAuthenticated {
			s.Status = models.StatusUnauthenticated
		}
		s.CurrentUser = nil
	})
}

// begin checks the session is usable and marks it loading.
func (a *authService) begin() error {
	a.mu.Lock()
	switch a.session.Status {
	case models.StatusUninitialized, models.StatusRestoring:
		a.mu.Unlock()
		return ErrNotInitialized
	}
	a.session.IsLoading = true
	snap := a.snapshotLocked()
	a.mu.Unlock()
	a.notify(snap)
	return nil
}

func (a *authService) finish(status models.SessionStatus, user *models.User) {
	a.update(func(s *models.Session) {
		s.Status = status
		s.CurrentUser = user
		s.IsLoading = false
	})
}

func (a *authService) update(fn func(s *models.Session)) {
	a.mu.Lock()
	fn(&a.session)
	snap := a.snapshotLocked()
	a.mu.Unlock()
	a.notify(snap)
}

func (a *authService) clearStored(ctx context.Context) {
	if err := a.creds.Clear(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear credentials", "error", err)
	}
}

func (a *authService) snapshotLocked() models.Session {
	s := a.session
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		s.CurrentUser = &u
	}
	return s
}

func (a *authService) notify(s models.Session) {
	a.lmu.Lock()
	ls := make([]*listenerEntry, len(a.listeners))
	copy(ls, a.listeners)
	a.lmu.Unlock()

	for _, l := range ls {
		l.fn(s)
	}
}

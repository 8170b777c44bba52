package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/iudanet/todokeeper/internal/client/api"
	"github.com/iudanet/todokeeper/internal/models"
	"github.com/iudanet/todokeeper/internal/validation"
	pkgapi "github.com/iudanet/todokeeper/pkg/api"
)

// State is the authentication state of the Manager.
type State int

const (
	StateUnknown State = iota // до Bootstrap
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

//go:generate moq -out client_mock.go . Client

// Client is the subset of api.Client used by the Manager.
type Client interface {
	Login(ctx context.Context, req pkgapi.LoginRequest) (*api.AuthResult, error)
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*api.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// TerminationHook is called after the session was torn down because
// token renewal failed.
type TerminationHook func(ctx context.Context, cause error)

// Manager owns the single process-wide session.
// All readers go through its accessors; Bootstrap, Login, Register,
// Logout and Terminate are the only points that change it.
type Manager struct {
	client       Client
	store        *CredentialStore
	logger       *slog.Logger
	onTerminated TerminationHook
	session      models.Session
	renewals     singleflight.Group
	bootOnce     sync.Once
	bootErr      error
	mu           sync.RWMutex // session и state; держится и на время записи в store
	state        State
}

// Compile-time check that Manager can back the request gateway
var _ api.TokenSource = (*Manager)(nil)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithTerminationHook sets the callback invoked after a forced logout
func WithTerminationHook(hook TerminationHook) ManagerOption {
	return func(m *Manager) {
		m.onTerminated = hook
	}
}

// NewManager создает менеджер сессии
func NewManager(client Client, store *CredentialStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		client: client,
		store:  store,
		logger: slog.New(slog.DiscardHandler),
		state:  StateUnknown,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Bootstrap rehydrates the session from the credential store.
// It runs once per Manager; later calls return the first result.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.bootOnce.Do(func() {
		sess, err := m.store.Load(ctx)

		m.mu.Lock()
		defer m.mu.Unlock()

		// Login/Register могли завершиться раньше
		if m.state != StateUnknown {
			return
		}

		if err != nil {
			m.bootErr = fmt.Errorf("failed to restore session: %w", err)
			m.setAnonymousLocked()
			return
		}

		if sess.IsLive() {
			m.session = *sess
			m.state = StateAuthenticated
			m.logger.DebugContext(ctx, "session restored", slog.String("username", sess.User.Username))
			return
		}
		m.setAnonymousLocked()
	})
	return m.bootErr
}

// Login authenticates with email and password and stores the new session.
// On failure the Manager stays Anonymous and the server's message is returned.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, models.NewValidationError("email", "email cannot be empty")
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	res, err := m.client.Login(ctx, pkgapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, rejected(err)
	}

	if err := m.establish(ctx, res); err != nil {
		return nil, err
	}
	m.logger.InfoContext(ctx, "logged in", slog.String("username", res.User.Username))
	return m.CurrentUser(), nil
}

// Register creates an account and logs into it.
func (m *Manager) Register(ctx context.Context, username, email, password, password2 string) (*models.UserProfile, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidateNewPassword(password, password2); err != nil {
		return nil, err
	}

	res, err := m.client.Register(ctx, pkgapi.RegisterRequest{
		Username:  username,
		Email:     email,
		Password:  password,
		Password2: password2,
	})
	if err != nil {
		return nil, rejected(err)
	}

	if err := m.establish(ctx, res); err != nil {
		return nil, err
	}
	m.logger.InfoContext(ctx, "registered", slog.String("username", res.User.Username))
	return m.CurrentUser(), nil
}

// rejected turns a refused login or registration into a ValidationError
// carrying the server's message. Network and server faults pass through.
func rejected(err error) error {
	if api.IsKind(err, api.KindValidation) || api.IsKind(err, api.KindUnauthorized) {
		var apiErr *api.Error
		errors.As(err, &apiErr)
		return models.NewValidationError("", apiErr.Message())
	}
	return err
}

func (m *Manager) establish(ctx context.Context, res *api.AuthResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(ctx, res.User, res.Tokens); err != nil {
		return err
	}

	user := res.User
	m.session = models.Session{
		User:         &user,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		ExpiresAt:    TokenExpiry(res.Tokens.AccessToken),
	}
	m.state = StateAuthenticated
	return nil
}

// Logout notifies the server (best effort) and always clears the local session.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.RLock()
	access, refresh := m.session.AccessToken, m.session.RefreshToken
	m.mu.RUnlock()

	if access != "" {
		// Ошибки сервера и сети не мешают локальному выходу
		if err := m.client.Logout(ctx, access, refresh); err != nil {
			m.logger.WarnContext(ctx, "failed to logout on server", slog.Any("error", err))
		}
	}

	return m.clear(ctx)
}

// AccessToken returns the current access token, "" when anonymous.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	if err := m.Bootstrap(ctx); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.AccessToken, nil
}

// Renew exchanges the refresh token for a new access token and persists
// the new pair. Concurrent callers share one renewal call. If the session
// already moved past stale, the current token is returned without a call.
//
// The shared call is not bound to any single caller's context: a caller
// that gives up gets ctx.Err(), the others still receive the result.
func (m *Manager) Renew(ctx context.Context, stale string) (string, error) {
	ch := m.renewals.DoChan("renew", func() (any, error) {
		return m.renew(context.WithoutCancel(ctx), stale)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (m *Manager) renew(ctx context.Context, stale string) (string, error) {
	m.mu.RLock()
	sess := m.session
	m.mu.RUnlock()

	if sess.AccessToken != "" && sess.AccessToken != stale {
		return sess.AccessToken, nil
	}
	if sess.RefreshToken == "" || sess.User == nil {
		return "", ErrNoRefreshToken
	}

	pair, err := m.client.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// пока шел запрос, сессию могли закрыть или заменить новым входом
	if m.state != StateAuthenticated || m.session.RefreshToken != sess.RefreshToken {
		m.logger.DebugContext(ctx, "session changed during renewal, result dropped")
		if m.session.IsLive() {
			return m.session.AccessToken, nil
		}
		return "", ErrNotAuthenticated
	}

	if err := m.store.Save(ctx, *m.session.User, *pair); err != nil {
		return "", err
	}
	m.session.AccessToken = pair.AccessToken
	m.session.RefreshToken = pair.RefreshToken
	m.session.ExpiresAt = TokenExpiry(pair.AccessToken)

	m.logger.DebugContext(ctx, "access token renewed")
	return pair.AccessToken, nil
}

// Terminate clears the session after a failed renewal and fires the
// termination hook.
func (m *Manager) Terminate(ctx context.Context, cause error) {
	m.logger.WarnContext(ctx, "session terminated", slog.Any("cause", cause))

	if err := m.clear(ctx); err != nil {
		m.logger.ErrorContext(ctx, "failed to clear session", slog.Any("error", err))
	}

	if m.onTerminated != nil {
		m.onTerminated(ctx, cause)
	}
}

// UpdateProfile replaces the stored user profile, keeping the tokens.
func (m *Manager) UpdateProfile(ctx context.Context, user models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.session.IsLive() {
		return ErrNotAuthenticated
	}

	pair := models.TokenPair{AccessToken: m.session.AccessToken, RefreshToken: m.session.RefreshToken}
	if err := m.store.Save(ctx, user, pair); err != nil {
		return err
	}
	m.session.User = &user
	return nil
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// CurrentUser returns a copy of the logged-in user, nil when anonymous.
func (m *Manager) CurrentUser() *models.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session.User == nil {
		return nil
	}
	user := *m.session.User
	return &user
}

// Session returns a snapshot of the current session.
func (m *Manager) Session() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess := m.session
	if sess.User != nil {
		user := *sess.User
		sess.User = &user
	}
	return sess
}

// clear wipes the store and the in-memory session under one lock, so a
// renewal finishing concurrently cannot write the tokens back.
func (m *Manager) clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.store.Clear(ctx)
	m.setAnonymousLocked()
	return err
}

func (m *Manager) setAnonymousLocked() {
	m.session = models.Session{}
	m.state = StateAnonymous
}

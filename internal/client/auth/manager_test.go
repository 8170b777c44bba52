package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todokeeper/internal/client/api"
	"github.com/iudanet/todokeeper/internal/models"
	pkgapi "github.com/iudanet/todokeeper/pkg/api"
)

func newTestManager(t *testing.T, client Client, opts ...ManagerOption) (*Manager, *CredentialStore) {
	t.Helper()
	cs, err := NewCredentialStore(context.Background(), createTestBackend(t), "")
	require.NoError(t, err)
	return NewManager(client, cs, opts...), cs
}

func loginResult(access, refresh string) *api.AuthResult {
	return &api.AuthResult{
		User:   testUser(),
		Tokens: models.TokenPair{AccessToken: access, RefreshToken: refresh},
	}
}

func TestManager_BootstrapAnonymous(t *testing.T) {
	m, _ := newTestManager(t, &ClientMock{})

	assert.Equal(t, StateUnknown, m.State())
	require.NoError(t, m.Bootstrap(context.Background()))
	assert.Equal(t, StateAnonymous, m.State())
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.CurrentUser())
}

func TestManager_BootstrapRestoresSession(t *testing.T) {
	ctx := context.Background()
	m, cs := newTestManager(t, &ClientMock{})
	require.NoError(t, cs.Save(ctx, testUser(), models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))

	require.NoError(t, m.Bootstrap(ctx))

	assert.Equal(t, StateAuthenticated, m.State())
	require.NotNil(t, m.CurrentUser())
	assert.Equal(t, "ann", m.CurrentUser().Username)

	token, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a1", token)
}

func TestManager_BootstrapRunsOnce(t *testing.T) {
	ctx := context.Background()
	m, cs := newTestManager(t, &ClientMock{})

	require.NoError(t, m.Bootstrap(ctx))
	require.NoError(t, cs.Save(ctx, testUser(), models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, m.Bootstrap(ctx))

	assert.Equal(t, StateAnonymous, m.State())
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	access := signedToken(t, "7", exp)

	client := &ClientMock{
		LoginFunc: func(ctx context.Context, req pkgapi.LoginRequest) (*api.AuthResult, error) {
			assert.Equal(t, "ann@example.com", req.Email)
			return loginResult(access, "r1"), nil
		},
	}
	m, cs := newTestManager(t, client)

	user, err := m.Login(ctx, " ann@example.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ann", user.Username)
	assert.True(t, m.IsAuthenticated())
	assert.True(t, exp.Equal(m.Session().ExpiresAt))

	stored, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, access, stored.AccessToken)
	assert.Equal(t, "r1", stored.RefreshToken)
}

func TestManager_LoginValidation(t *testing.T) {
	client := &ClientMock{}
	m, _ := newTestManager(t, client)

	tests := []struct {
		name, email, password, field string
	}{
		{name: "empty email", email: "  ", password: "x", field: "email"},
		{name: "empty password", email: "ann@example.com", password: "", field: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Login(context.Background(), tt.email, tt.password)

			var vErr *models.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
	assert.Empty(t, client.LoginCalls())
}

func TestManager_LoginFailureStaysAnonymous(t *testing.T) {
	client := &ClientMock{
		LoginFunc: func(ctx context.Context, req pkgapi.LoginRequest) (*api.AuthResult, error) {
			return nil, fmt.Errorf("login request failed: %w", &api.Error{
				Status:  http.StatusUnauthorized,
				Kind:    api.KindUnauthorized,
				Payload: api.ParseErrorPayload([]byte(`{"error": "Invalid credentials"}`)),
			})
		},
	}
	m, _ := newTestManager(t, client)
	require.NoError(t, m.Bootstrap(context.Background()))

	_, err := m.Login(context.Background(), "ann@example.com", "wrong")

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Invalid credentials", vErr.Message)
	assert.Equal(t, StateAnonymous, m.State())
}

func TestManager_LoginNetworkFailurePassesThrough(t *testing.T) {
	client := &ClientMock{
		LoginFunc: func(ctx context.Context, req pkgapi.LoginRequest) (*api.AuthResult, error) {
			return nil, fmt.Errorf("%w: POST /auth/login/: connection refused", api.ErrNetworkUnavailable)
		},
	}
	m, _ := newTestManager(t, client)

	_, err := m.Login(context.Background(), "ann@example.com", "secret123")

	assert.ErrorIs(t, err, api.ErrNetworkUnavailable)
	assert.False(t, m.IsAuthenticated())
}

func TestManager_Register(t *testing.T) {
	client := &ClientMock{
		RegisterFunc: func(ctx context.Context, req pkgapi.RegisterRequest) (*api.AuthResult, error) {
			assert.Equal(t, "ann", req.Username)
			assert.Equal(t, req.Password, req.Password2)
			return loginResult("a1", "r1"), nil
		},
	}
	m, _ := newTestManager(t, client)

	_, err := m.Register(context.Background(), "ann", "ann@example.com", "longpassword", "different")
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Passwords don't match", vErr.Message)
	assert.Empty(t, client.RegisterCalls())

	_, err = m.Register(context.Background(), "ann", "ann@example.com", "longpassword", "longpassword")
	require.NoError(t, err)
	assert.True(t, m.IsAuthenticated())
	assert.Len(t, client.RegisterCalls(), 1)
}

func TestManager_LogoutIgnoresServerFailure(t *testing.T) {
	ctx := context.Background()
	client := &ClientMock{
		LoginFunc: func(ctx context.Context, req pkgapi.LoginRequest) (*api.AuthResult, error) {
			return loginResult("a1", "r1"), nil
		},
		LogoutFunc: func(ctx context.Context, accessToken, refreshToken string) error {
			return api.ErrNetworkUnavailable
		},
	}
	m, cs := newTestManager(t, client)
	_, err := m.Login(ctx, "ann@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx))

	require.Len(t, client.LogoutCalls(), 1)
	assert.Equal(t, "a1", client.LogoutCalls()[0].AccessToken)
	assert.Equal(t, "r1", client.LogoutCalls()[0].RefreshToken)
	assert.Equal(t, StateAnonymous, m.State())

	stored, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.False(t, stored.IsLive())
}

func TestManager_Renew(t *testing.T) {
	ctx := context.Background()
	client := &ClientMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
			assert.Equal(t, "r1", refreshToken)
			return &models.TokenPair{AccessToken: "a2", RefreshToken: "r1"}, nil
		},
	}
	m, cs := newTestManager(t, client)
	require.NoError(t, cs.Save(ctx, testUser(), models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, m.Bootstrap(ctx))

	fresh, err := m.Renew(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a2", fresh)

	stored, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a2", stored.AccessToken)
	assert.Equal(t, "r1", stored.RefreshToken)

	// токен уже обновлен другим вызовом: без сети
	fresh, err = m.Renew(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a2", fresh)
	assert.Len(t, client.RefreshCalls(), 1)
}

func TestManager_RenewConcurrentSharesOneCall(t *testing.T) {
	ctx := context.Background()
	var calls int32
	release := make(chan struct{})
	client := &ClientMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return &models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
		},
	}
	m, cs := newTestManager(t, client)
	require.NoError(t, cs.Save(ctx, testUser(), models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, m.Bootstrap(ctx))

	const workers = 5
	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := m.Renew(ctx, "a1")
			assert.NoError(t, err)
			results[i] = token
		}()
	}

	// даем горутинам встать в очередь singleflight
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, token := range results {
		assert.Equal(t, "a2", token)
	}
}

func newUnauthorizedServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestManager_RenewCallerCancelledKeepsSession(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})
	client := &ClientMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
			close(started)
			<-release
			// отмена вызывающего не доходит до общего запроса
			assert.NoError(t, ctx.Err())
			return &models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
		},
	}
	m, cs := newTestManager(t, client)
	require.NoError(t, cs.Save(ctx, testUser(), models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, m.Bootstrap(ctx))

	callCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		_, err := m.Renew(callCtx, "a1")
		done <- err
	}()

	<-started
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	// второй вызов присоединяется к тому же обновлению
	second := make(chan string, 1)
	go func() {
		token, err := m.Renew(ctx, "a1")
		assert.NoError(t, err)
		second <- token
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	assert.Equal(t, "a2", <-second)
	assert.Len(t, client.RefreshCalls(), 1)
	assert.Equal(t, StateAuthenticated, m.State())

	stored, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a2", stored.AccessToken)
	assert.Equal(t, "r2", stored.RefreshToken)
}

func TestManager_RenewCancelledThroughGatewayDoesNotTerminate(t *testing.T) {
	ctx := context.Background()
	server := newUnauthorizedServer(t)

	callCtx, cancel := context.WithCancel(ctx)
	client := &ClientMock{
		RefreshFunc: func(context.Context, string) (*models.TokenPair, error) {
			cancel()
			return nil, context.Canceled
		},
	}
	var terminated bool
	m, cs := newTestManager(t, client, WithTerminationHook(func(context.Context, error) {
		terminated = true
	}))
	require.NoError(t, cs.Save(ctx, testUser(), models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, m.Bootstrap(ctx))

	gw := api.NewGateway(api.NewClient(server.URL), m, nil)
	_, err := gw.Me(callCtx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, api.ErrSessionTerminated))
	assert.False(t, terminated)
	assert.Equal(t, StateAuthenticated, m.State())

	stored, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a1", stored.AccessToken)
	assert.Equal(t, "r1", stored.RefreshToken)
}

func TestManager_RenewAfterLogoutDoesNotRestoreTokens(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})
	client := &ClientMock{
		RefreshFunc: func(context.Context, string) (*models.TokenPair, error) {
			close(started)
			<-release
			return &models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
		},
		LogoutFunc: func(context.Context, string, string) error { return nil },
	}
	m, cs := newTestManager(t, client)
	require.NoError(t, cs.Save(ctx, testUser(), models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, m.Bootstrap(ctx))

	done := make(chan error, 1)
	go func() {
		_, err := m.Renew(ctx, "a1")
		done <- err
	}()

	<-started
	require.NoError(t, m.Logout(ctx))
	close(release)

	assert.ErrorIs(t, <-done, ErrNotAuthenticated)
	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, m.CurrentUser())
	assert.Empty(t, m.Session().AccessToken)

	stored, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.False(t, stored.IsLive())
	assert.Empty(t, stored.AccessToken)
	assert.Empty(t, stored.RefreshToken)
}

func TestManager_RenewAfterTerminateDoesNotRestoreTokens(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})
	client := &ClientMock{
		RefreshFunc: func(context.Context, string) (*models.TokenPair, error) {
			close(started)
			<-release
			return &models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
		},
	}
	m, cs := newTestManager(t, client)
	require.NoError(t, cs.Save(ctx, testUser(), models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, m.Bootstrap(ctx))

	done := make(chan error, 1)
	go func() {
		_, err := m.Renew(ctx, "a1")
		done <- err
	}()

	<-started
	m.Terminate(ctx, errors.New("refresh rejected elsewhere"))
	close(release)

	assert.ErrorIs(t, <-done, ErrNotAuthenticated)
	assert.False(t, m.IsAuthenticated())

	stored, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshToken)
}

func TestManager_RenewWithoutRefreshToken(t *testing.T) {
	m, _ := newTestManager(t, &ClientMock{})
	require.NoError(t, m.Bootstrap(context.Background()))

	_, err := m.Renew(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestManager_TerminateClearsStoreAndFiresHook(t *testing.T) {
	ctx := context.Background()
	var hookCause error
	m, cs := newTestManager(t, &ClientMock{}, WithTerminationHook(func(ctx context.Context, cause error) {
		hookCause = cause
	}))
	require.NoError(t, cs.Save(ctx, testUser(), models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, m.Bootstrap(ctx))

	cause := errors.New("refresh rejected")
	m.Terminate(ctx, cause)

	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, m.CurrentUser())
	assert.ErrorIs(t, hookCause, cause)

	stored, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.False(t, stored.IsLive())
	assert.Empty(t, stored.RefreshToken)
}

func TestManager_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	m, cs := newTestManager(t, &ClientMock{})

	err := m.UpdateProfile(ctx, testUser())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, cs.Save(ctx, testUser(), models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, m.Bootstrap(ctx))

	count := 3
	updated := testUser()
	updated.TodoCount = &count
	require.NoError(t, m.UpdateProfile(ctx, updated))

	assert.Equal(t, &count, m.CurrentUser().TodoCount)
	stored, err := cs.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored.User.TodoCount)
	assert.Equal(t, 3, *stored.User.TodoCount)
	assert.Equal(t, "a1", stored.AccessToken)
}

// TestManager_GatewayRenewalFailure проверяет полный путь: 401 -> неудачное обновление -> выход
func TestManager_GatewayRenewalFailure(t *testing.T) {
	ctx := context.Background()
	client := &ClientMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
			return nil, errors.New("token refresh failed: server error (401): Token is blacklisted")
		},
	}
	terminated := false
	m, cs := newTestManager(t, client, WithTerminationHook(func(ctx context.Context, cause error) {
		terminated = true
	}))
	require.NoError(t, cs.Save(ctx, testUser(), models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))

	token, err := m.AccessToken(ctx)
	require.NoError(t, err)

	_, err = m.Renew(ctx, token)
	require.Error(t, err)
	m.Terminate(ctx, err)

	assert.True(t, terminated)
	assert.False(t, m.IsAuthenticated())
	stored, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored.User)
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/iudanet/todokeeper/internal/models"
	"github.com/iudanet/todokeeper/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenServer отвечает 401 на любой токен, кроме valid
func tokenServer(t *testing.T, valid string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.Header.Get("Authorization") != "Bearer "+valid {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(api.User{ID: 1, Username: "ann", Email: "ann@example.com"})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGateway_Send_NoRenewalOnSuccess(t *testing.T) {
	var hits int32
	server := tokenServer(t, "good", &hits)

	tokens := &TokenSourceMock{
		AccessTokenFunc: func(ctx context.Context) (string, error) { return "good", nil },
	}
	gw := NewGateway(NewClient(server.URL), tokens, nil)

	user, err := gw.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ann", user.Username)
	assert.Equal(t, int32(1), hits)
	assert.Empty(t, tokens.RenewCalls())
}

func TestGateway_Send_RenewsOnceAndRetries(t *testing.T) {
	var hits int32
	server := tokenServer(t, "fresh", &hits)

	tokens := &TokenSourceMock{
		AccessTokenFunc: func(ctx context.Context) (string, error) { return "stale", nil },
		RenewFunc:       func(ctx context.Context, stale string) (string, error) { return "fresh", nil },
	}
	gw := NewGateway(NewClient(server.URL), tokens, nil)

	user, err := gw.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, int32(2), hits)
	require.Len(t, tokens.RenewCalls(), 1)
	assert.Equal(t, "stale", tokens.RenewCalls()[0].Stale)
	assert.Empty(t, tokens.TerminateCalls())
}

func TestGateway_Send_RetryRejectedIsNotRenewedAgain(t *testing.T) {
	var hits int32
	server := tokenServer(t, "never", &hits)

	tokens := &TokenSourceMock{
		AccessTokenFunc: func(ctx context.Context) (string, error) { return "stale", nil },
		RenewFunc:       func(ctx context.Context, stale string) (string, error) { return "also-bad", nil },
	}
	gw := NewGateway(NewClient(server.URL), tokens, nil)

	_, err := gw.Me(context.Background())

	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnauthorized))
	assert.False(t, errors.Is(err, ErrSessionTerminated))
	assert.Equal(t, int32(2), hits)
	assert.Len(t, tokens.RenewCalls(), 1)
	assert.Empty(t, tokens.TerminateCalls())
}

func TestGateway_Send_RenewalFailureTerminates(t *testing.T) {
	var hits int32
	server := tokenServer(t, "fresh", &hits)

	renewErr := errors.New("refresh token expired")
	tokens := &TokenSourceMock{
		AccessTokenFunc: func(ctx context.Context) (string, error) { return "stale", nil },
		RenewFunc:       func(ctx context.Context, stale string) (string, error) { return "", renewErr },
		TerminateFunc:   func(ctx context.Context, cause error) {},
	}
	gw := NewGateway(NewClient(server.URL), tokens, nil)

	resp, err := gw.Send(context.Background(), &Request{Method: http.MethodGet, Path: "/auth/me/"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionTerminated)
	assert.True(t, IsKind(err, KindUnauthorized))
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(1), hits)

	require.Len(t, tokens.TerminateCalls(), 1)
	assert.ErrorIs(t, tokens.TerminateCalls()[0].Cause, renewErr)
}

func TestGateway_Send_CancelledRenewalKeepsSession(t *testing.T) {
	var hits int32
	server := tokenServer(t, "fresh", &hits)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tokens := &TokenSourceMock{
		AccessTokenFunc: func(ctx context.Context) (string, error) { return "stale", nil },
		RenewFunc: func(ctx context.Context, stale string) (string, error) {
			cancel()
			return "", ctx.Err()
		},
		TerminateFunc: func(ctx context.Context, cause error) {},
	}
	gw := NewGateway(NewClient(server.URL), tokens, nil)

	_, err := gw.Me(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrSessionTerminated))
	assert.Equal(t, int32(1), hits)
	assert.Empty(t, tokens.TerminateCalls())
}

func TestGateway_Send_RenewalDeadlineKeepsSession(t *testing.T) {
	var hits int32
	server := tokenServer(t, "fresh", &hits)

	tokens := &TokenSourceMock{
		AccessTokenFunc: func(ctx context.Context) (string, error) { return "stale", nil },
		RenewFunc: func(ctx context.Context, stale string) (string, error) {
			return "", fmt.Errorf("refresh: %w", context.DeadlineExceeded)
		},
		TerminateFunc: func(ctx context.Context, cause error) {},
	}
	gw := NewGateway(NewClient(server.URL), tokens, nil)

	_, err := gw.Me(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, errors.Is(err, ErrSessionTerminated))
	assert.Empty(t, tokens.TerminateCalls())
}

func TestGateway_Send_NetworkErrorSkipsRenewal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	tokens := &TokenSourceMock{
		AccessTokenFunc: func(ctx context.Context) (string, error) { return "t", nil },
	}
	gw := NewGateway(NewClient(url), tokens, nil)

	_, err := gw.ListTodos(context.Background(), PageQuery{Page: 1, PageSize: 10})

	assert.ErrorIs(t, err, ErrNetworkUnavailable)
	assert.Empty(t, tokens.RenewCalls())
}

func TestGateway_ListTodos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/todos/", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		assert.Empty(t, r.URL.Query().Get("user_id"))

		_ = json.NewEncoder(w).Encode(api.Paginated[api.Todo]{
			Count:   21,
			Results: []api.Todo{{ID: 21, User: 1, Username: "ann", Title: "last"}},
		})
	}))
	defer server.Close()

	tokens := &TokenSourceMock{
		AccessTokenFunc: func(ctx context.Context) (string, error) { return "t", nil },
	}
	gw := NewGateway(NewClient(server.URL), tokens, nil)

	page, err := gw.ListTodos(context.Background(), PageQuery{Page: 3, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, 21, page.TotalCount)
	assert.Equal(t, 3, page.PageIndex)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrevious)
	require.Len(t, page.Items, 1)
	assert.Equal(t, models.Task{ID: 21, OwnerID: 1, OwnerUsername: "ann", Title: "last"}, page.Items[0])
}

func TestGateway_TodosByUser_RequiresUser(t *testing.T) {
	gw := NewGateway(NewClient("http://127.0.0.1:0"), &TokenSourceMock{}, nil)

	_, err := gw.TodosByUser(context.Background(), PageQuery{Page: 1, PageSize: 10})

	var vErr *models.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestGateway_CreateAndUpdateTodo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/todos/":
			var req api.CreateTodoRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.False(t, req.Completed)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(api.Todo{ID: 5, User: 1, Title: req.Title, Description: req.Description})
		case r.Method == http.MethodPut && r.URL.Path == "/api/todos/5/":
			var req api.UpdateTodoRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			_ = json.NewEncoder(w).Encode(api.Todo{ID: 5, User: 1, Title: req.Title, Description: req.Description, Completed: req.Completed})
		case r.Method == http.MethodGet && r.URL.Path == "/api/todos/5/":
			_ = json.NewEncoder(w).Encode(api.Todo{ID: 5, User: 1, Username: "ann", Title: "Buy milk"})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/todos/5/":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	tokens := &TokenSourceMock{
		AccessTokenFunc: func(ctx context.Context) (string, error) { return "t", nil },
	}
	gw := NewGateway(NewClient(server.URL), tokens, nil)
	ctx := context.Background()

	created, err := gw.CreateTodo(ctx, models.TaskDraft{Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)

	created.Completed = true
	updated, err := gw.UpdateTodo(ctx, *created)
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	fetched, err := gw.GetTodo(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "ann", fetched.OwnerUsername)

	_, err = gw.GetTodo(ctx, 6)
	assert.True(t, IsNotFound(err))

	require.NoError(t, gw.DeleteTodo(ctx, 5))

	err = gw.DeleteTodo(ctx, 6)
	assert.True(t, IsNotFound(err))
}

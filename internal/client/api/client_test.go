package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iudanet/todokeeper/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8000/")

	assert.Equal(t, "http://localhost:8000/api", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)

	client = NewClient("http://localhost:8000", WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
}

func TestNewClient_WithHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0,"results":[]}`))
	}))
	defer server.Close()

	hc := server.Client()
	before := hc.Timeout
	client := NewClient(server.URL, WithHTTPClient(hc), WithTimeout(2*time.Second))

	assert.Equal(t, 2*time.Second, client.httpClient.Timeout)
	assert.Equal(t, before, hc.Timeout)
	assert.Equal(t, hc.Transport, client.httpClient.Transport)

	resp, err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/todos/"}, "")
	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestClient_Do_Headers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/todos/", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Content-Type"))

		_, err := uuid.Parse(r.Header.Get(HeaderRequestID))
		assert.NoError(t, err)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"count":0,"results":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/todos/",
		Query:  PageQuery{Page: 2, PageSize: 10}.values(),
	}, "access-1")

	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"count":0,"results":[]}`, string(resp.Body))
}

func TestClient_Do_NonSuccessIsNotTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Authentication credentials were not provided."}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Do(context.Background(), &Request{Method: http.MethodGet, Path: "/auth/me/"}, "")

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, resp.OK())
}

func TestClient_Do_NetworkUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).Do(context.Background(), &Request{Method: http.MethodGet, Path: "/todos/"}, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetworkUnavailable)
}

func TestClient_Do_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL).Do(ctx, &Request{Method: http.MethodGet, Path: "/todos/"}, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrNetworkUnavailable))
}

// TestClient_Login проверяет успешный вход
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ann@example.com", req.Email)
		assert.Equal(t, "secret123", req.Password)

		_ = json.NewEncoder(w).Encode(api.AuthResponse{
			User:   api.User{ID: 3, Username: "ann", Email: "ann@example.com"},
			Tokens: api.Tokens{Access: "a1", Refresh: "r1"},
		})
	}))
	defer server.Close()

	res, err := NewClient(server.URL).Login(context.Background(), api.LoginRequest{Email: "ann@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), res.User.ID)
	assert.Equal(t, "ann", res.User.Username)
	assert.Equal(t, "a1", res.Tokens.AccessToken)
	assert.Equal(t, "r1", res.Tokens.RefreshToken)
}

// TestClient_Register_Error проверяет обработку ошибок при регистрации
func TestClient_Register_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"username":["A user with that username already exists."],"password":["This password is too common."]}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Register(context.Background(), api.RegisterRequest{
		Username: "ann", Email: "ann@example.com", Password: "password", Password2: "password",
	})

	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, "A user with that username already exists., This password is too common.", Message(err))
}

func TestClient_Refresh(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantAccess  string
		wantRefresh string
		wantErr     bool
	}{
		{name: "rotated", response: `{"access":"a2","refresh":"r2"}`, wantAccess: "a2", wantRefresh: "r2"},
		{name: "not rotated", response: `{"access":"a2"}`, wantAccess: "a2", wantRefresh: "r1"},
		{name: "empty access", response: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/auth/token/refresh/", r.URL.Path)
				assert.Empty(t, r.Header.Get("Authorization"))

				var req api.RefreshRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "r1", req.Refresh)

				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			pair, err := NewClient(server.URL).Refresh(context.Background(), "r1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccess, pair.AccessToken)
			assert.Equal(t, tt.wantRefresh, pair.RefreshToken)
		})
	}
}

func TestClient_Logout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/logout/", r.URL.Path)
		assert.Equal(t, "Bearer a1", r.Header.Get("Authorization"))

		var req api.LogoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "r1", req.Refresh)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := NewClient(server.URL).Logout(context.Background(), "a1", "r1")
	require.NoError(t, err)
}

// Package apitest provides an in-memory implementation of the task API for
// tests: JWT auth with refresh and logout blacklisting, paged todo lists
// with ownership checks, and the admin user directory.
package apitest

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/iudanet/todokeeper/pkg/api"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type user struct {
	joined   time.Time
	username string
	email    string
	password string
	id       int64
	admin    bool
}

// Server is a fake task API backed by memory.
type Server struct {
	*httptest.Server

	logger  *slog.Logger
	tokens  *tokenIssuer
	users   map[int64]*user
	todos   map[int64]*api.Todo
	refresh map[string]int64 // refresh token -> user id
	hits    map[string]int
	nextID  int64
	clock   time.Time
	mu      sync.Mutex

	rotateRefresh bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAccessTTL sets the lifetime of issued access tokens
func WithAccessTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.tokens.accessTTL = ttl
	}
}

// WithRefreshRotation makes token refresh issue a new refresh token too
func WithRefreshRotation() Option {
	return func(s *Server) {
		s.rotateRefresh = true
	}
}

// NewServer starts a fake API server. Call Close when done.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:  slog.New(slog.DiscardHandler),
		tokens:  newTokenIssuer(15 * time.Minute),
		users:   make(map[int64]*user),
		todos:   make(map[int64]*api.Todo),
		refresh: make(map[string]int64),
		hits:    make(map[string]int),
		nextID:  1,
		clock:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Server = httptest.NewServer(s.router())
	return s
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.recovery, s.logging)

	a := r.PathPrefix("/api").Subrouter()

	// публичные эндпоинты
	a.HandleFunc("/auth/register/", s.handleRegister).Methods(http.MethodPost)
	a.HandleFunc("/auth/login/", s.handleLogin).Methods(http.MethodPost)
	a.HandleFunc("/auth/token/refresh/", s.handleRefresh).Methods(http.MethodPost)

	// эндпоинты с авторизацией
	p := a.NewRoute().Subrouter()
	p.Use(s.authenticate)
	p.HandleFunc("/auth/logout/", s.handleLogout).Methods(http.MethodPost)
	p.HandleFunc("/auth/me/", s.handleMe).Methods(http.MethodGet)
	p.HandleFunc("/auth/users/", s.adminOnly(s.handleUsers)).Methods(http.MethodGet)
	p.HandleFunc("/todos/", s.handleListTodos).Methods(http.MethodGet)
	p.HandleFunc("/todos/", s.handleCreateTodo).Methods(http.MethodPost)
	p.HandleFunc("/todos/by_user/", s.adminOnly(s.handleTodosByUser)).Methods(http.MethodGet)
	p.HandleFunc("/todos/{id:[0-9]+}/", s.handleGetTodo).Methods(http.MethodGet)
	p.HandleFunc("/todos/{id:[0-9]+}/", s.handleUpdateTodo).Methods(http.MethodPut, http.MethodPatch)
	p.HandleFunc("/todos/{id:[0-9]+}/", s.handleDeleteTodo).Methods(http.MethodDelete)

	return r
}

// AddUser creates an account directly, bypassing registration.
func (s *Server) AddUser(username, email, password string, admin bool) api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.addUserLocked(username, email, password, admin)
	return s.userDTOLocked(u)
}

// AddTodo creates a task owned by userID.
func (s *Server) AddTodo(userID int64, title, description string) api.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.addTodoLocked(userID, title, description)
}

// RemoveTodo deletes a task behind the client's back.
func (s *Server) RemoveTodo(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.todos, id)
}

// Todo returns the stored task.
func (s *Server) Todo(id int64) (api.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok {
		return api.Todo{}, false
	}
	return *t, true
}

// ExpireAccessTokens invalidates every access token issued so far.
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens.rotate()
}

// RevokeRefreshTokens invalidates every refresh token issued so far.
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.refresh)
}

// Hits returns how many requests reached "METHOD /path".
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

func (s *Server) addUserLocked(username, email, password string, admin bool) *user {
	s.clock = s.clock.Add(time.Minute)
	u := &user{
		id:       s.nextID,
		username: username,
		email:    email,
		password: password,
		admin:    admin,
		joined:   s.clock,
	}
	s.nextID++
	s.users[u.id] = u
	return u
}

func (s *Server) addTodoLocked(userID int64, title, description string) *api.Todo {
	s.clock = s.clock.Add(time.Minute)
	owner := s.users[userID]
	t := &api.Todo{
		ID:          s.nextID,
		User:        userID,
		Title:       title,
		Description: description,
		CreatedAt:   s.clock,
		UpdatedAt:   s.clock,
	}
	if owner != nil {
		t.Username = owner.username
	}
	s.nextID++
	s.todos[t.ID] = t
	return t
}

func (s *Server) userDTOLocked(u *user) api.User {
	count := 0
	for _, t := range s.todos {
		if t.User == u.id {
			count++
		}
	}
	joined := u.joined
	return api.User{
		ID:         u.id,
		Username:   u.username,
		Email:      u.email,
		IsAdmin:    u.admin,
		DateJoined: &joined,
		TodoCount:  &count,
	}
}

// todosLocked returns the tasks matching keep, newest first.
func (s *Server) todosLocked(keep func(*api.Todo) bool) []api.Todo {
	var out []api.Todo
	for _, t := range s.todos {
		if keep(t) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

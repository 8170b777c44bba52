package apitest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/todokeeper/internal/validation"
	"github.com/iudanet/todokeeper/pkg/api"
)

// handleRegister обрабатывает POST /api/auth/register/
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var errs fieldErrors
	if err := validation.ValidateUsername(req.Username); err != nil {
		errs.add("username", err.Error())
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		errs.add("email", "Enter a valid email address.")
	}
	for _, u := range s.users {
		if strings.EqualFold(u.username, req.Username) {
			errs.add("username", "A user with that username already exists.")
		}
		if req.Email != "" && strings.EqualFold(u.email, req.Email) {
			errs.add("email", "user with this email already exists.")
		}
	}
	if len(req.Password) < validation.MinPasswordLen {
		errs.add("password", "This password is too short. It must contain at least 8 characters.")
	}
	if errs.empty() && req.Password != req.Password2 {
		errs.add("password", "Passwords don't match")
	}
	if !errs.empty() {
		sendJSON(w, &errs, http.StatusBadRequest)
		return
	}

	u := s.addUserLocked(req.Username, req.Email, req.Password, false)
	s.logger.InfoContext(r.Context(), "user registered", slog.String("username", u.username))

	s.sendAuthLocked(w, u, http.StatusCreated)
}

// handleLogin обрабатывает POST /api/auth/login/
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var errs fieldErrors
	if req.Email == "" {
		errs.add("email", "This field may not be blank.")
	}
	if req.Password == "" {
		errs.add("password", "This field may not be blank.")
	}
	if !errs.empty() {
		sendJSON(w, &errs, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.email, req.Email) && u.password == req.Password {
			s.sendAuthLocked(w, u, http.StatusOK)
			return
		}
	}
	sendError(w, "Invalid credentials", http.StatusUnauthorized)
}

func (s *Server) sendAuthLocked(w http.ResponseWriter, u *user, status int) {
	access, err := s.tokens.issue(u.id)
	if err != nil {
		sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	refresh := newRefreshToken()
	s.refresh[refresh] = u.id

	sendJSON(w, api.AuthResponse{
		User:   s.userDTOLocked(u),
		Tokens: api.Tokens{Access: access, Refresh: refresh},
	}, status)
}

// handleRefresh обрабатывает POST /api/auth/token/refresh/
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		var errs fieldErrors
		errs.add("refresh", "This field is required.")
		sendJSON(w, &errs, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.refresh[req.Refresh]
	if !ok {
		sendJSON(w, map[string]string{
			"detail": "Token is invalid or expired",
			"code":   "token_not_valid",
		}, http.StatusUnauthorized)
		return
	}

	access, err := s.tokens.issue(userID)
	if err != nil {
		sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.RefreshResponse{Access: access}
	if s.rotateRefresh {
		delete(s.refresh, req.Refresh)
		resp.Refresh = newRefreshToken()
		s.refresh[resp.Refresh] = userID
	}
	sendJSON(w, resp, http.StatusOK)
}

// handleLogout обрабатывает POST /api/auth/logout/; refresh token попадает в черный список
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req api.LogoutRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	delete(s.refresh, req.Refresh)
	s.mu.Unlock()

	sendJSON(w, map[string]string{"message": "Logged out successfully"}, http.StatusOK)
}

// handleMe обрабатывает GET /api/auth/me/
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u := s.currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	sendJSON(w, s.userDTOLocked(u), http.StatusOK)
}

// handleUsers обрабатывает GET /api/auth/users/ (только администратор)
func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []api.User
	for _, u := range s.users {
		if !u.admin {
			users = append(users, s.userDTOLocked(u))
		}
	}
	sortUsers(users)

	paginate(w, r, users)
}

package apitest

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"
)

type ctxKey int

const userIDKey ctxKey = iota

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// logging логирует метод, путь, статус и время выполнения и считает обращения
func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		s.mu.Lock()
		s.hits[r.Method+" "+r.URL.Path]++
		s.mu.Unlock()

		next.ServeHTTP(wrapped, r)

		logLevel := slog.LevelInfo
		if wrapped.statusCode >= 500 {
			logLevel = slog.LevelError
		} else if wrapped.statusCode >= 400 {
			logLevel = slog.LevelWarn
		}

		s.logger.Log(r.Context(), logLevel, "HTTP request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", r.Header.Get("X-Request-ID")),
			slog.Int("status", wrapped.statusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	})
}

// recovery перехватывает panic и возвращает 500
func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("Panic recovered",
					slog.Any("error", err),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())))
				sendError(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authenticate проверяет Bearer токен и кладет id пользователя в контекст
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			sendDetail(w, "Authentication credentials were not provided.", http.StatusUnauthorized)
			return
		}

		// Ожидаем формат: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			sendDetail(w, "Authorization header must contain two space-delimited values", http.StatusUnauthorized)
			return
		}

		s.mu.Lock()
		claims, err := s.tokens.validate(parts[1])
		_, known := s.users[userIDOf(claims)]
		s.mu.Unlock()

		if err != nil || !known {
			s.logger.Debug("access token rejected", slog.Any("error", err))
			sendTokenInvalid(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly пропускает только администраторов
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := s.currentUser(r)
		if u == nil || !u.admin {
			sendDetail(w, "You do not have permission to perform this action.", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

func userIDOf(c *accessClaims) int64 {
	if c == nil {
		return 0
	}
	return c.UserID
}

func (s *Server) currentUser(r *http.Request) *user {
	id, _ := r.Context().Value(userIDKey).(int64)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

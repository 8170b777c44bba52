package apitest

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/iudanet/todokeeper/pkg/api"
)

// handleListTodos обрабатывает GET /api/todos/: администратор видит все задачи
func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	u := s.currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	todos := s.todosLocked(func(t *api.Todo) bool {
		return u.admin || t.User == u.id
	})
	paginate(w, r, todos)
}

// handleTodosByUser обрабатывает GET /api/todos/by_user/?user_id= (только администратор)
func (s *Server) handleTodosByUser(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		sendError(w, "user_id is required", http.StatusBadRequest)
		return
	}
	userID, err := strconv.ParseInt(raw, 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; err != nil || !ok {
		sendError(w, "User not found", http.StatusNotFound)
		return
	}

	todos := s.todosLocked(func(t *api.Todo) bool {
		return t.User == userID
	})
	paginate(w, r, todos)
}

// handleCreateTodo обрабатывает POST /api/todos/
func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req api.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		var errs fieldErrors
		errs.add("title", "This field may not be blank.")
		sendJSON(w, &errs, http.StatusBadRequest)
		return
	}

	u := s.currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.addTodoLocked(u.id, req.Title, req.Description)
	t.Completed = req.Completed
	sendJSON(w, *t, http.StatusCreated)
}

// handleGetTodo обрабатывает GET /api/todos/{id}/
func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	s.withTodo(w, r, func(t *api.Todo) {
		sendJSON(w, *t, http.StatusOK)
	})
}

// handleUpdateTodo обрабатывает PUT и PATCH /api/todos/{id}/
func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	var req map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.withTodo(w, r, func(t *api.Todo) {
		next := *t
		var errs fieldErrors

		if raw, ok := req["title"]; ok {
			_ = json.Unmarshal(raw, &next.Title)
			if strings.TrimSpace(next.Title) == "" {
				errs.add("title", "This field may not be blank.")
			}
		} else if r.Method == http.MethodPut {
			errs.add("title", "This field is required.")
		}
		if raw, ok := req["description"]; ok {
			_ = json.Unmarshal(raw, &next.Description)
		}
		if raw, ok := req["completed"]; ok {
			_ = json.Unmarshal(raw, &next.Completed)
		}

		if !errs.empty() {
			sendJSON(w, &errs, http.StatusBadRequest)
			return
		}

		s.clock = s.clock.Add(time.Second)
		next.UpdatedAt = s.clock
		*t = next
		sendJSON(w, next, http.StatusOK)
	})
}

// handleDeleteTodo обрабатывает DELETE /api/todos/{id}/
func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	s.withTodo(w, r, func(t *api.Todo) {
		delete(s.todos, t.ID)
		w.WriteHeader(http.StatusNoContent)
	})
}

// withTodo находит задачу по {id} и проверяет права; fn вызывается под блокировкой
func (s *Server) withTodo(w http.ResponseWriter, r *http.Request, fn func(t *api.Todo)) {
	u := s.currentUser(r)
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok {
		sendDetail(w, "No Todo matches the given query.", http.StatusNotFound)
		return
	}
	if !u.admin && t.User != u.id {
		sendDetail(w, "You do not have permission to perform this action.", http.StatusForbidden)
		return
	}
	fn(t)
}

func sortUsers(users []api.User) {
	sort.Slice(users, func(i, j int) bool {
		return users[i].DateJoined.After(*users[j].DateJoined)
	})
}

// paginate отдает страницу items по параметрам page и page_size
func paginate[T any](w http.ResponseWriter, r *http.Request, items []T) {
	q := r.URL.Query()

	size := defaultPageSize
	if raw := q.Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			size = min(n, maxPageSize)
		}
	}

	pages := max(1, (len(items)+size-1)/size)
	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > pages {
			sendDetail(w, "Invalid page.", http.StatusNotFound)
			return
		}
		page = n
	}

	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))

	resp := api.Paginated[T]{
		Count:   len(items),
		Results: items[start:end],
	}
	if resp.Results == nil {
		resp.Results = []T{}
	}
	if page < pages {
		resp.Next = pageLink(r, page+1)
	}
	if page > 1 {
		resp.Previous = pageLink(r, page-1)
	}
	sendJSON(w, resp, http.StatusOK)
}

func pageLink(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := "http://" + r.Host + u.RequestURI()
	return &link
}

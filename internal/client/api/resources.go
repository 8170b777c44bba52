package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iudanet/todokeeper/internal/models"
	"github.com/iudanet/todokeeper/pkg/api"
)

// PageQuery selects one page of a list endpoint.
type PageQuery struct {
	Page     int
	PageSize int
	UserID   int64 // scope filter, 0 = not set
}

func (q PageQuery) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("page_size", strconv.Itoa(q.PageSize))
	if q.UserID != 0 {
		v.Set("user_id", strconv.FormatInt(q.UserID, 10))
	}
	return v
}

// Me возвращает профиль текущего пользователя
func (g *Gateway) Me(ctx context.Context) (*models.UserProfile, error) {
	var resp api.User
	if err := g.call(ctx, &Request{Method: http.MethodGet, Path: "/auth/me/"}, &resp); err != nil {
		return nil, fmt.Errorf("get current user failed: %w", err)
	}
	user := userFromDTO(resp)
	return &user, nil
}

// ListUsers возвращает страницу пользователей (только для администратора)
func (g *Gateway) ListUsers(ctx context.Context, q PageQuery) (*models.Page[models.UserProfile], error) {
	var resp api.Paginated[api.User]
	req := &Request{Method: http.MethodGet, Path: "/auth/users/", Query: PageQuery{Page: q.Page, PageSize: q.PageSize}.values()}
	if err := g.call(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}
	return pageFromDTO(resp, q, userFromDTO), nil
}

// ListTodos возвращает страницу задач; q.UserID передается как есть в user_id
func (g *Gateway) ListTodos(ctx context.Context, q PageQuery) (*models.Page[models.Task], error) {
	var resp api.Paginated[api.Todo]
	if err := g.call(ctx, &Request{Method: http.MethodGet, Path: "/todos/", Query: q.values()}, &resp); err != nil {
		return nil, fmt.Errorf("list todos failed: %w", err)
	}
	return pageFromDTO(resp, q, taskFromDTO), nil
}

// TodosByUser возвращает страницу задач указанного пользователя (только для администратора)
func (g *Gateway) TodosByUser(ctx context.Context, q PageQuery) (*models.Page[models.Task], error) {
	if q.UserID == 0 {
		return nil, models.NewValidationError("user_id", "user_id is required")
	}

	var resp api.Paginated[api.Todo]
	if err := g.call(ctx, &Request{Method: http.MethodGet, Path: "/todos/by_user/", Query: q.values()}, &resp); err != nil {
		return nil, fmt.Errorf("list user todos failed: %w", err)
	}
	return pageFromDTO(resp, q, taskFromDTO), nil
}

// GetTodo возвращает одну задачу по id
func (g *Gateway) GetTodo(ctx context.Context, id int64) (*models.Task, error) {
	var resp api.Todo
	if err := g.call(ctx, &Request{Method: http.MethodGet, Path: todoPath(id)}, &resp); err != nil {
		return nil, fmt.Errorf("get todo %d failed: %w", id, err)
	}
	task := taskFromDTO(resp)
	return &task, nil
}

// CreateTodo создает задачу
func (g *Gateway) CreateTodo(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	var resp api.Todo
	req := &Request{
		Method: http.MethodPost,
		Path:   "/todos/",
		Body: api.CreateTodoRequest{
			Title:       draft.Title,
			Description: draft.Description,
			Completed:   false,
		},
	}
	if err := g.call(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("create todo failed: %w", err)
	}
	task := taskFromDTO(resp)
	return &task, nil
}

// UpdateTodo заменяет поля задачи (PUT) значениями из t
func (g *Gateway) UpdateTodo(ctx context.Context, t models.Task) (*models.Task, error) {
	var resp api.Todo
	req := &Request{
		Method: http.MethodPut,
		Path:   todoPath(t.ID),
		Body: api.UpdateTodoRequest{
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
		},
	}
	if err := g.call(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("update todo %d failed: %w", t.ID, err)
	}
	task := taskFromDTO(resp)
	return &task, nil
}

// DeleteTodo удаляет задачу
func (g *Gateway) DeleteTodo(ctx context.Context, id int64) error {
	if err := g.call(ctx, &Request{Method: http.MethodDelete, Path: todoPath(id)}, nil); err != nil {
		return fmt.Errorf("delete todo %d failed: %w", id, err)
	}
	return nil
}

func todoPath(id int64) string {
	return "/todos/" + strconv.FormatInt(id, 10) + "/"
}

package api

import "time"

// Todo представляет задачу в ответах сервера
type Todo struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Username    string    `json:"username"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ID          int64     `json:"id"`
	User        int64     `json:"user"`
	Completed   bool      `json:"completed"`
}

// CreateTodoRequest представляет запрос на создание задачи
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateTodoRequest представляет запрос PUT /todos/{id}/
type UpdateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Paginated is the page envelope returned by list endpoints.
type Paginated[T any] struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
	Count    int     `json:"count"`
}

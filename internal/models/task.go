package models

import (
	"strings"
	"time"
)

// Task представляет задачу (todo) пользователя
type Task struct {
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	OwnerUsername string    `json:"username"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"user"`
	Completed     bool      `json:"completed"`
}

// Key returns the server-assigned task id.
func (t Task) Key() int64 {
	return t.ID
}

// TaskDraft is the payload of a new task.
type TaskDraft struct {
	Title       string
	Description string
}

// Validate trims the draft and checks the title.
func (d *TaskDraft) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	if d.Title == "" {
		return NewValidationError("title", "title cannot be empty")
	}
	return nil
}

// TaskPatch is a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Apply returns a copy of t with the patch applied.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// Validate checks that a patched title stays non-empty.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title", "title cannot be empty")
	}
	if p.Title == nil && p.Description == nil && p.Completed == nil {
		return NewValidationError("", "nothing to update")
	}
	return nil
}

// ChangesFrom reports whether applying the patch modifies t.
func (p TaskPatch) ChangesFrom(t Task) bool {
	return p.Apply(t) != t
}

// CanMutate reports whether user may edit or delete the task.
// Administrators may mutate any task, everyone else only their own.
func CanMutate(user *UserProfile, t Task) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin || user.ID == t.OwnerID
}

// Package todos applies task mutations and reconciles the held page with
// the server's answer.
package todos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/todokeeper/internal/client/api"
	"github.com/iudanet/todokeeper/internal/client/collection"
	"github.com/iudanet/todokeeper/internal/models"
)

// ErrNotOwner indicates that the current user may not edit the task
var ErrNotOwner = errors.New("you can only modify your own todos")

//go:generate moq -out remote_mock.go . Remote

// Remote is the part of the API used for mutations. api.Gateway implements it.
type Remote interface {
	CreateTodo(ctx context.Context, draft models.TaskDraft) (*models.Task, error)
	UpdateTodo(ctx context.Context, t models.Task) (*models.Task, error)
	DeleteTodo(ctx context.Context, id int64) error
}

// Reconciler performs create/update/toggle/delete and brings the page held
// by the controller in line with the server's response.
// Failures are recorded in a single error slot and reported through the
// notifier; the held page is never changed by a failed mutation.
type Reconciler struct {
	remote   Remote
	page     *collection.Controller[models.Task]
	notifier Notifier
	logger   *slog.Logger
	user     func() *models.UserProfile
	editing  *models.Task
	lastErr  error
	mu       sync.Mutex
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithNotifier sets the notice receiver
func WithNotifier(n Notifier) Option {
	return func(r *Reconciler) {
		r.notifier = n
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// WithCurrentUser sets the source of the logged-in user, used for the
// ownership check in BeginEdit.
func WithCurrentUser(user func() *models.UserProfile) Option {
	return func(r *Reconciler) {
		r.user = user
	}
}

// NewReconciler создает reconciler поверх контроллера страницы задач
func NewReconciler(remote Remote, page *collection.Controller[models.Task], opts ...Option) *Reconciler {
	r := &Reconciler{
		remote: remote,
		page:   page,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.notifier == nil {
		r.notifier = logNotifier{logger: r.logger}
	}
	return r
}

// Create posts a new task and reloads page 1 of the current scope.
func (r *Reconciler) Create(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	r.clearError()

	if err := draft.Validate(); err != nil {
		return nil, r.fail(ctx, err)
	}

	task, err := r.remote.CreateTodo(ctx, draft)
	if err != nil {
		return nil, r.fail(ctx, err)
	}

	r.logger.DebugContext(ctx, "todo created", slog.Int64("id", task.ID))
	r.notify(ctx, LevelSuccess, "Todo created successfully")

	// новая запись меняет порядок, поэтому перечитываем первую страницу
	q := r.page.Query()
	r.settle(ctx, func(ctx context.Context) error {
		_, err := r.page.LoadPage(ctx, 1, q.PageSize)
		return err
	})

	return task, nil
}

// Update applies patch to the held task id and stores the result.
func (r *Reconciler) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	r.clearError()

	if err := patch.Validate(); err != nil {
		return nil, r.fail(ctx, err)
	}

	base, ok := r.lookup(id)
	if !ok {
		return nil, r.fail(ctx, models.NewValidationError("", fmt.Sprintf("todo %d is not on the current page", id)))
	}
	if !patch.ChangesFrom(base) {
		return nil, r.fail(ctx, models.NewValidationError("", "no changes to save"))
	}

	return r.put(ctx, patch.Apply(base), "Todo updated successfully")
}

// Toggle inverts the completion flag of task.
func (r *Reconciler) Toggle(ctx context.Context, task models.Task) (*models.Task, error) {
	r.clearError()

	// держим версию со страницы, если она там есть
	if held, ok := r.page.Find(task.ID); ok {
		task = held
	}
	task.Completed = !task.Completed

	msg := "Todo marked as pending"
	if task.Completed {
		msg = "Todo marked as completed"
	}
	return r.put(ctx, task, msg)
}

func (r *Reconciler) put(ctx context.Context, task models.Task, success string) (*models.Task, error) {
	updated, err := r.remote.UpdateTodo(ctx, task)
	if err != nil {
		if api.IsNotFound(err) {
			r.logger.InfoContext(ctx, "todo vanished on server", slog.Int64("id", task.ID))
			r.endEdit(task.ID)
			err = r.fail(ctx, err)
			r.settle(ctx, func(ctx context.Context) error {
				_, err := r.page.Settle(ctx)
				return err
			})
			return nil, err
		}
		return nil, r.fail(ctx, err)
	}

	r.page.Replace(*updated)
	r.endEdit(updated.ID)
	r.notify(ctx, LevelSuccess, success)
	return updated, nil
}

// Remove deletes task id and repaginates. A task already gone on the
// server counts as deleted: the page is reloaded and only a notice is shown.
func (r *Reconciler) Remove(ctx context.Context, id int64) error {
	r.clearError()

	if err := r.remote.DeleteTodo(ctx, id); err != nil {
		if !api.IsNotFound(err) {
			return r.fail(ctx, err)
		}

		r.endEdit(id)
		r.notify(ctx, LevelError, api.Message(err))
		r.settle(ctx, func(ctx context.Context) error {
			_, err := r.page.Settle(ctx)
			return err
		})
		return nil
	}

	r.endEdit(id)
	r.notify(ctx, LevelSuccess, "Todo deleted successfully")
	r.settle(ctx, func(ctx context.Context) error {
		_, err := r.page.AfterDelete(ctx)
		return err
	})
	return nil
}

// BeginEdit marks the held task id as being edited.
func (r *Reconciler) BeginEdit(id int64) (models.Task, error) {
	task, ok := r.page.Find(id)
	if !ok {
		return models.Task{}, models.NewValidationError("", fmt.Sprintf("todo %d is not on the current page", id))
	}
	if r.user != nil && !models.CanMutate(r.user(), task) {
		return models.Task{}, ErrNotOwner
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.editing = &task
	return task, nil
}

// EditTask starts editing a task fetched outside the current page.
func (r *Reconciler) EditTask(task models.Task) error {
	if r.user != nil && !models.CanMutate(r.user(), task) {
		return ErrNotOwner
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.editing = &task
	return nil
}

// CancelEdit drops the edit state.
func (r *Reconciler) CancelEdit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.editing = nil
}

// Editing returns the task being edited.
func (r *Reconciler) Editing() (models.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.editing == nil {
		return models.Task{}, false
	}
	return *r.editing, true
}

// LastError returns the error of the most recent failed operation, nil after a success.
func (r *Reconciler) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

func (r *Reconciler) lookup(id int64) (models.Task, bool) {
	if task, ok := r.page.Find(id); ok {
		return task, true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.editing != nil && r.editing.ID == id {
		return *r.editing, true
	}
	return models.Task{}, false
}

func (r *Reconciler) endEdit(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.editing != nil && r.editing.ID == id {
		r.editing = nil
	}
}

func (r *Reconciler) clearError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = nil
}

// fail records err in the error slot, shows it and returns it.
func (r *Reconciler) fail(ctx context.Context, err error) error {
	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()

	r.notify(ctx, LevelError, api.Message(err))
	return err
}

// settle runs a follow-up reload; its failure goes to the error slot but
// does not undo the mutation that already succeeded.
func (r *Reconciler) settle(ctx context.Context, reload func(ctx context.Context) error) {
	err := reload(ctx)
	if err == nil || errors.Is(err, collection.ErrDiscarded) {
		return
	}
	r.logger.WarnContext(ctx, "failed to reload todos", slog.Any("error", err))

	r.mu.Lock()
	if r.lastErr == nil {
		r.lastErr = err
	}
	r.mu.Unlock()
	r.notify(ctx, LevelError, api.Message(err))
}

func (r *Reconciler) notify(ctx context.Context, level Level, text string) {
	if text == "" {
		return
	}
	r.notifier.Notify(ctx, Notice{Level: level, Text: text})
}

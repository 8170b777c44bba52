package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/todokeeper/internal/client/todos"
	"github.com/iudanet/todokeeper/internal/models"
)

func newEditCommand(e *env) *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the title or description of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch models.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			return e.cli.runEdit(cmd.Context(), id, patch)
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	return cmd
}

// runEdit edits a todo by id; without flags the fields are prompted for.
func (c *Cli) runEdit(ctx context.Context, id int64, patch models.TaskPatch) error {
	if _, err := c.requireLogin(ctx); err != nil {
		return err
	}

	task, err := c.gateway.GetTodo(ctx, id)
	if err != nil {
		return err
	}

	page, rec := c.tasks(0, c.cfg.PageSize)
	defer page.Close()

	if err := rec.EditTask(*task); err != nil {
		return err
	}

	if patch.Title == nil && patch.Description == nil {
		if patch, err = c.promptPatch(*task); err != nil {
			rec.CancelEdit()
			return err
		}
	}

	updated, err := c.update(ctx, rec, id, patch)
	if err != nil {
		return err
	}
	return c.render(taskTemplate, updated)
}

func (c *Cli) update(ctx context.Context, rec *todos.Reconciler, id int64, patch models.TaskPatch) (*models.Task, error) {
	task, err := rec.Update(ctx, id, patch)
	return task, reported(err)
}

// promptPatch asks for new values; an empty answer keeps the current one.
func (c *Cli) promptPatch(task models.Task) (models.TaskPatch, error) {
	var patch models.TaskPatch

	title, err := c.io.ReadInput(fmt.Sprintf("Title [%s]: ", task.Title))
	if err != nil {
		return patch, fmt.Errorf("failed to read title: %w", err)
	}
	if title != "" {
		patch.Title = &title
	}

	description, err := c.io.ReadInput(fmt.Sprintf("Description [%s]: ", ellipsis(task.Description, 40)))
	if err != nil {
		return patch, fmt.Errorf("failed to read description: %w", err)
	}
	if description != "" {
		patch.Description = &description
	}

	if patch.Title == nil && patch.Description == nil {
		// ничего не введено: сработает проверка "no changes to save"
		patch.Title = &task.Title
	}
	return patch, nil
}

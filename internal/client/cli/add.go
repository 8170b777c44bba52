package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/todokeeper/internal/client/todos"
	"github.com/iudanet/todokeeper/internal/models"
)

func newAddCommand(e *env) *cobra.Command {
	var draft models.TaskDraft
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a todo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				draft.Title = args[0]
			}
			return e.cli.runAdd(cmd.Context(), draft)
		},
	}
	cmd.Flags().StringVarP(&draft.Description, "description", "d", "", "description")
	return cmd
}

func (c *Cli) runAdd(ctx context.Context, draft models.TaskDraft) error {
	if _, err := c.requireLogin(ctx); err != nil {
		return err
	}

	if draft.Title == "" {
		var err error
		if draft, err = c.promptDraft(); err != nil {
			return err
		}
	}

	page, rec := c.tasks(0, c.cfg.PageSize)
	defer page.Close()

	task, err := c.create(ctx, rec, draft)
	if err != nil {
		return err
	}
	c.io.Printf("ID: %d\n", task.ID)
	return nil
}

func (c *Cli) create(ctx context.Context, rec *todos.Reconciler, draft models.TaskDraft) (*models.Task, error) {
	task, err := rec.Create(ctx, draft)
	return task, reported(err)
}

func (c *Cli) promptDraft() (models.TaskDraft, error) {
	var (
		draft models.TaskDraft
		err   error
	)
	if draft.Title, err = c.io.ReadInput("Title: "); err != nil {
		return draft, fmt.Errorf("failed to read title: %w", err)
	}
	if draft.Description, err = c.io.ReadInput("Description (optional): "); err != nil {
		return draft, fmt.Errorf("failed to read description: %w", err)
	}
	return draft, nil
}

package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newToggleCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark a todo completed or pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return e.cli.runToggle(cmd.Context(), id)
		},
	}
}

func (c *Cli) runToggle(ctx context.Context, id int64) error {
	if _, err := c.requireLogin(ctx); err != nil {
		return err
	}

	task, err := c.gateway.GetTodo(ctx, id)
	if err != nil {
		return err
	}

	page, rec := c.tasks(0, c.cfg.PageSize)
	defer page.Close()

	if _, err := rec.Toggle(ctx, *task); err != nil {
		return reported(err)
	}
	return nil
}

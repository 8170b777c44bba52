package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCommand(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return e.cli.runDelete(cmd.Context(), id, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *Cli) runDelete(ctx context.Context, id int64, yes bool) error {
	if _, err := c.requireLogin(ctx); err != nil {
		return err
	}

	if !yes {
		ok, err := c.io.Confirm(fmt.Sprintf("Delete todo %d?", id))
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		if !ok {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	page, rec := c.tasks(0, c.cfg.PageSize)
	defer page.Close()

	return reported(rec.Remove(ctx, id))
}

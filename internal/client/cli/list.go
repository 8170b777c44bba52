package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type listOptions struct {
	page int
	size int
	user int64
}

func newListCommand(e *env) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.cli.runList(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.size, "size", 0, "page size (defaults to --page-size)")
	cmd.Flags().Int64Var(&opts.user, "user", 0, "only todos of this user id (admin)")
	return cmd
}

func (c *Cli) runList(ctx context.Context, opts listOptions) error {
	if opts.user != 0 {
		if _, err := c.requireAdmin(ctx, "list another user's todos"); err != nil {
			return err
		}
	} else if _, err := c.requireLogin(ctx); err != nil {
		return err
	}

	size := orDefault(opts.size, c.cfg.PageSize)
	page, _ := c.tasks(opts.user, size)
	defer page.Close()

	current, err := page.LoadPage(ctx, opts.page, size)
	if err != nil {
		return err
	}
	c.renderTasks(current)
	return nil
}

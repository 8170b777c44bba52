package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iudanet/todokeeper/internal/client/collection"
)

func newUsersCommand(e *env) *cobra.Command {
	var page, size int
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List registered users (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.cli.runUsers(cmd.Context(), page, size)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&size, "size", 0, "page size (defaults to --page-size)")
	return cmd
}

func (c *Cli) runUsers(ctx context.Context, index, size int) error {
	if _, err := c.requireAdmin(ctx, "view the user directory"); err != nil {
		return err
	}

	size = orDefault(size, c.cfg.PageSize)
	users := collection.New(c.gateway.ListUsers, size, collection.WithLogger(c.logger))
	defer users.Close()

	page, err := users.LoadPage(ctx, index, size)
	if err != nil {
		return err
	}
	c.renderUsers(page)
	return nil
}

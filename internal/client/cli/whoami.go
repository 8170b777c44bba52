package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newWhoamiCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Fetch the current profile from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.cli.runWhoami(cmd.Context())
		},
	}
}

func (c *Cli) runWhoami(ctx context.Context) error {
	if _, err := c.requireLogin(ctx); err != nil {
		return err
	}

	me, err := c.gateway.Me(ctx)
	if err != nil {
		return err
	}
	if err := c.session.UpdateProfile(ctx, *me); err != nil {
		return err
	}
	return c.render(profileTemplate, me)
}

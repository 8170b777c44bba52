package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newLogoutCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.cli.runLogout(cmd.Context())
		},
	}
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.session.Bootstrap(ctx); err != nil {
		return err
	}
	if !c.session.IsAuthenticated() {
		c.io.Println("Not logged in.")
		return nil
	}

	// ошибка сервера не мешает очистить локальную сессию
	if err := c.session.Logout(ctx); err != nil {
		return err
	}
	c.io.Println("✓ Logged out.")
	return nil
}

package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved session without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.cli.runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()
	c.io.Printf("Server: %s\n", c.cfg.ServerURL)
	c.io.Printf("Store:  %s (%s)\n", c.cfg.Store.Path, c.cfg.Store.Driver)
	c.io.Println()

	if err := c.session.Bootstrap(ctx); err != nil {
		return err
	}

	sess := c.session.Session()
	if !sess.IsLive() {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'todokeeper login' to authenticate.")
		return nil
	}

	role := "user"
	if sess.User.IsAdmin {
		role = "admin"
	}
	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", sess.User.Username)
	c.io.Printf("Email: %s\n", sess.User.Email)
	c.io.Printf("Role: %s\n", role)

	if sess.ExpiresAt.IsZero() {
		return nil
	}
	c.io.Printf("Access token expires: %s\n", sess.ExpiresAt.Local().Format(time.RFC3339))
	if remaining := time.Until(sess.ExpiresAt); remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("Access token has expired; it will be renewed on the next request.")
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newLoginCommand(e *env) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.cli.runLogin(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email (prompted when empty)")
	return cmd
}

func (c *Cli) runLogin(ctx context.Context, email string) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	var err error
	if email == "" {
		if email, err = c.io.ReadInput("Email: "); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	user, err := c.session.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", user.Username)
	if exp := c.session.Session().ExpiresAt; !exp.IsZero() {
		c.io.Printf("Access token expires: %s\n", exp.Local().Format(time.RFC3339))
	}
	c.io.Println()
	c.io.Println("Your session has been saved.")
	return nil
}

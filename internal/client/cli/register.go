package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCommand(e *env) *cobra.Command {
	var username, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.cli.runRegister(cmd.Context(), username, email)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username (prompted when empty)")
	cmd.Flags().StringVar(&email, "email", "", "email (prompted when empty)")
	return cmd
}

func (c *Cli) runRegister(ctx context.Context, username, email string) error {
	c.io.Println("=== Register ===")
	c.io.Println()

	var err error
	if username == "" {
		if username, err = c.io.ReadInput("Username: "); err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}
	if email == "" {
		if email, err = c.io.ReadInput("Email: "); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirmation, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Registering...")

	user, err := c.session.Register(ctx, username, email, password, confirmation)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("Logged in as %s <%s>\n", user.Username, user.Email)
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/todokeeper/internal/client/api"
	"github.com/iudanet/todokeeper/internal/client/collection"
	"github.com/iudanet/todokeeper/internal/client/todos"
	"github.com/iudanet/todokeeper/internal/models"
)

func newBrowseCommand(e *env) *cobra.Command {
	var size int
	var user int64
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through todos interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.cli.runBrowse(cmd.Context(), size, user)
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "page size (defaults to --page-size)")
	cmd.Flags().Int64Var(&user, "user", 0, "start with this user's todos (admin)")
	return cmd
}

// browser is one interactive session over a single page controller.
type browser struct {
	cli  *Cli
	page *collection.Controller[models.Task]
	rec  *todos.Reconciler
	user *models.UserProfile
}

func (c *Cli) runBrowse(ctx context.Context, size int, scope int64) error {
	user, err := c.requireLogin(ctx)
	if err != nil {
		return err
	}
	if scope != 0 && !user.IsAdmin {
		return models.NewValidationError("", "only administrators can browse another user's todos")
	}

	page, rec := c.tasks(scope, orDefault(size, c.cfg.PageSize))
	defer page.Close()

	if _, err := page.Reload(ctx); err != nil {
		return err
	}

	b := &browser{cli: c, page: page, rec: rec, user: user}
	c.io.Println("Type 'h' for help.")
	for {
		if current := page.Current(); current != nil {
			c.io.Println()
			c.renderTasks(current)
		}

		line, err := c.io.ReadInput("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		quit, err := b.exec(ctx, strings.Fields(line))
		switch {
		case errors.Is(err, api.ErrSessionTerminated):
			return err
		case err != nil && !isReported(err):
			c.io.Println("✗", api.Message(err))
		}
		if quit {
			return nil
		}
	}
}

func (b *browser) exec(ctx context.Context, fields []string) (quit bool, err error) {
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help", "?":
		b.cli.io.Println(browseHelp)
	case "n", "next":
		_, err = b.page.Next(ctx)
	case "p", "prev":
		_, err = b.page.Previous(ctx)
	case "r", "reload":
		_, err = b.page.Reload(ctx)
	case "g", "page":
		var n int
		if n, err = intArg(args); err == nil {
			_, err = b.page.LoadPage(ctx, n, b.page.Query().PageSize)
		}
	case "s", "size":
		var n int
		if n, err = intArg(args); err == nil {
			_, err = b.page.SetPageSize(ctx, n)
		}
	case "u", "user":
		err = b.scope(ctx, args)
	case "a", "add":
		var draft models.TaskDraft
		if draft, err = b.cli.promptDraft(); err == nil {
			_, err = b.cli.create(ctx, b.rec, draft)
		}
	case "e", "edit":
		err = b.edit(ctx, args)
	case "t", "toggle":
		err = b.toggle(ctx, args)
	case "d", "delete":
		err = b.remove(ctx, args)
	default:
		err = models.NewValidationError("", fmt.Sprintf("unknown command %q, type 'h' for help", cmd))
	}
	return false, err
}

func (b *browser) scope(ctx context.Context, args []string) error {
	if !b.user.IsAdmin {
		return models.NewValidationError("", "only administrators can browse another user's todos")
	}
	if len(args) != 1 {
		return models.NewValidationError("", "usage: user ID (0 = everyone)")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 0 {
		return models.NewValidationError("", "invalid user id: "+strconv.Quote(args[0]))
	}
	_, err = b.page.SetScope(ctx, id)
	return err
}

func (b *browser) edit(ctx context.Context, args []string) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}
	task, err := b.rec.BeginEdit(id)
	if err != nil {
		return err
	}
	patch, err := b.cli.promptPatch(task)
	if err != nil {
		b.rec.CancelEdit()
		return err
	}
	if _, err := b.cli.update(ctx, b.rec, id, patch); err != nil {
		b.rec.CancelEdit()
		return err
	}
	return nil
}

func (b *browser) toggle(ctx context.Context, args []string) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}
	task, ok := b.page.Find(id)
	if !ok {
		return models.NewValidationError("", fmt.Sprintf("todo %d is not on the current page", id))
	}
	if !models.CanMutate(b.user, task) {
		return todos.ErrNotOwner
	}
	_, err = b.rec.Toggle(ctx, task)
	return reported(err)
}

func (b *browser) remove(ctx context.Context, args []string) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}
	task, ok := b.page.Find(id)
	if !ok {
		return models.NewValidationError("", fmt.Sprintf("todo %d is not on the current page", id))
	}
	if !models.CanMutate(b.user, task) {
		return todos.ErrNotOwner
	}
	ok, err = b.cli.io.Confirm(fmt.Sprintf("Delete todo %d?", id))
	if err != nil || !ok {
		return err
	}
	return reported(b.rec.Remove(ctx, id))
}

func idArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, models.NewValidationError("id", "a todo id is required")
	}
	return parseID(args[0])
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, models.NewValidationError("", "a number is required")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, models.NewValidationError("", "not a number: "+strconv.Quote(args[0]))
	}
	return n, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/todokeeper/internal/client/api"
	"github.com/iudanet/todokeeper/internal/client/auth"
	"github.com/iudanet/todokeeper/internal/client/collection"
	"github.com/iudanet/todokeeper/internal/client/config"
	"github.com/iudanet/todokeeper/internal/client/iocli"
	"github.com/iudanet/todokeeper/internal/client/storage"
	"github.com/iudanet/todokeeper/internal/client/storage/boltdb"
	"github.com/iudanet/todokeeper/internal/client/storage/sqlite"
	"github.com/iudanet/todokeeper/internal/client/todos"
	"github.com/iudanet/todokeeper/internal/models"
)

// errNotLoggedIn is returned by commands that need a session.
var errNotLoggedIn = fmt.Errorf("%w: run 'todokeeper login' first", auth.ErrNotAuthenticated)

// Cli holds the client stack shared by all commands of one invocation.
type Cli struct {
	io      iocli.IO
	logger  *slog.Logger
	store   storage.Store
	session *auth.Manager
	gateway *api.Gateway
	cfg     config.Config
}

// New opens the local store and wires the session manager and the gateway.
func New(ctx context.Context, cfg config.Config, io iocli.IO, logger *slog.Logger) (*Cli, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store, err := openStore(ctx, cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	creds, err := auth.NewCredentialStore(ctx, store, cfg.Store.Passphrase)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	c := &Cli{
		io:     io,
		logger: logger,
		store:  store,
		cfg:    cfg,
	}

	client := api.NewClient(cfg.ServerURL, api.WithTimeout(cfg.Timeout), api.WithLogger(logger))
	c.session = auth.NewManager(client, creds,
		auth.WithLogger(logger),
		auth.WithTerminationHook(c.onSessionTerminated),
	)
	c.gateway = api.NewGateway(client, c.session, logger)
	return c, nil
}

// openStore открывает хранилище сессии выбранного драйвера
func openStore(ctx context.Context, driver, path string) (storage.Store, error) {
	switch driver {
	case config.DriverSQLite:
		s, err := sqlite.New(ctx, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverBolt:
		s, err := boltdb.New(ctx, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, driver)
	}
}

// Close releases the local store.
func (c *Cli) Close() error {
	return c.store.Close()
}

// onSessionTerminated is the CLI's redirect to the login entry point.
func (c *Cli) onSessionTerminated(ctx context.Context, cause error) {
	c.logger.InfoContext(ctx, "session terminated", slog.Any("cause", cause))
	c.io.Println("Your session has ended. Run 'todokeeper login' to sign in again.")
}

// requireLogin restores the saved session and returns its user.
func (c *Cli) requireLogin(ctx context.Context) (*models.UserProfile, error) {
	if err := c.session.Bootstrap(ctx); err != nil {
		return nil, err
	}
	user := c.session.CurrentUser()
	if user == nil {
		return nil, errNotLoggedIn
	}
	return user, nil
}

// requireAdmin is requireLogin for administrator-only commands.
func (c *Cli) requireAdmin(ctx context.Context, action string) (*models.UserProfile, error) {
	user, err := c.requireLogin(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, models.NewValidationError("", "only administrators can "+action)
	}
	return user, nil
}

// tasks builds a todo page controller and a reconciler over it.
func (c *Cli) tasks(scope int64, pageSize int) (*collection.Controller[models.Task], *todos.Reconciler) {
	page := collection.New(todoFetcher(c.gateway), pageSize,
		collection.WithLogger(c.logger),
		collection.WithScope(scope),
	)
	rec := todos.NewReconciler(c.gateway, page,
		todos.WithNotifier(c.notifier()),
		todos.WithLogger(c.logger),
		todos.WithCurrentUser(c.session.CurrentUser),
	)
	return page, rec
}

// todoFetcher выбирает эндпоинт по наличию фильтра по владельцу
func todoFetcher(gw *api.Gateway) collection.Fetcher[models.Task] {
	return func(ctx context.Context, q api.PageQuery) (*models.Page[models.Task], error) {
		if q.UserID != 0 {
			return gw.TodosByUser(ctx, q)
		}
		return gw.ListTodos(ctx, q)
	}
}

func (c *Cli) notifier() todos.Notifier {
	return todos.NotifierFunc(func(ctx context.Context, n todos.Notice) {
		if n.Level == todos.LevelError {
			c.io.Println("✗", n.Text)
			return
		}
		c.io.Println("✓", n.Text)
	})
}

// reportedError marks an error that was already shown to the user
// through the notifier.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

func isReported(err error) bool {
	var rep *reportedError
	return errors.As(err, &rep)
}

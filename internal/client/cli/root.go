package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/todokeeper/internal/client/api"
	"github.com/iudanet/todokeeper/internal/client/config"
	"github.com/iudanet/todokeeper/internal/client/iocli"
)

// annotationOffline отмечает команды, которым не нужно локальное хранилище
const annotationOffline = "offline"

// BuildInfo is the version information set at link time.
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// env is filled by the root command before any subcommand runs.
type env struct {
	io     iocli.IO
	stderr io.Writer
	cli    *Cli
	info   BuildInfo
}

// Execute runs the command line on the process's standard streams and
// returns the exit code.
func Execute(ctx context.Context, info BuildInfo) int {
	return Run(ctx, os.Args[1:], iocli.NewStdio(), os.Stderr, info)
}

// Run runs one command. Errors are printed to stderr as a single line.
func Run(ctx context.Context, args []string, stdio iocli.IO, stderr io.Writer, info BuildInfo) int {
	e := &env{io: stdio, stderr: stderr, info: info}
	root := newRootCommand(e)
	root.SetArgs(args)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	// хранилище закрываем и после ошибки команды: bbolt держит блокировку файла
	if cerr := e.close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close store: %w", cerr)
	}
	if err != nil {
		if !isReported(err) {
			_, _ = fmt.Fprintf(stderr, "Error: %s\n", api.Message(err))
		}
		return 1
	}
	return 0
}

func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "todokeeper",
		Short:         "Command-line client for the TodoKeeper task service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if offline(cmd) {
				return nil
			}
			return e.open(cmd)
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newRegisterCommand(e),
		newLoginCommand(e),
		newLogoutCommand(e),
		newStatusCommand(e),
		newWhoamiCommand(e),
		newListCommand(e),
		newAddCommand(e),
		newEditCommand(e),
		newToggleCommand(e),
		newDeleteCommand(e),
		newUsersCommand(e),
		newBrowseCommand(e),
		newVersionCommand(e),
	)
	return root
}

// offline reports whether cmd runs without the client stack.
func offline(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationOffline] != "" {
			return true
		}
		// встроенные команды cobra
		if c.Name() == "help" || c.Name() == "completion" {
			return true
		}
	}
	return false
}

// open собирает конфигурацию и клиентский стек
func (e *env) open(cmd *cobra.Command) error {
	fs := cmd.Flags()

	envFile, err := fs.GetString(config.FlagEnvFile)
	if err != nil {
		return err
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	path, err := fs.GetString(config.FlagConfig)
	if err != nil {
		return err
	}
	if path == "" {
		path = os.Getenv("TODOKEEPER_CONFIG")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger(e.stderr)
	if err != nil {
		return err
	}

	c, err := New(cmd.Context(), cfg, e.io, logger)
	if err != nil {
		return err
	}
	e.cli = c
	return nil
}

func (e *env) close() error {
	if e.cli == nil {
		return nil
	}
	err := e.cli.Close()
	e.cli = nil
	return err
}

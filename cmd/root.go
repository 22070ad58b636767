// Package cmd implements the tasker command line.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker-go/internal/config"
	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/service"
	"github.com/nibzard/tasker-go/internal/storage"
	"github.com/nibzard/tasker-go/internal/task"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Process exit codes.
const (
	ExitOK         = 0
	ExitConfig     = 1 // configuration could not be loaded or is invalid
	ExitRepository = 2 // the storage file could not be opened or created
	ExitFailure    = 3 // any other failure
)

// ExitError carries the exit code for err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	var ce *storage.ConfigurationError
	var fe *config.FileError
	if errors.As(err, &ce) || errors.As(err, &fe) {
		return ExitConfig
	}
	return ExitFailure
}

// app holds what every subcommand needs.
type app struct {
	out    io.Writer
	errOut io.Writer
	cfg    *config.ConfigWithSources
	logger *log.Logger
	clock  task.Clock
}

// Run executes the tasker CLI on the process's standard streams.
func Run(ctx context.Context, args []string) error {
	return Execute(ctx, args, os.Stdout, os.Stderr)
}

// Execute executes the tasker CLI writing command output to out and
// diagnostics to errOut.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("tasker", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		printUsage(fs, errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return &ExitError{Code: ExitConfig, Err: fmt.Errorf("loading config: %w", err)}
	}

	a := &app{
		out:    out,
		errOut: errOut,
		cfg:    cws,
		logger: logging.FromConfig(errOut, cws.LogLevel, cws.LogFormat, cws.LogTimestamps, cws.LogCaller),
		clock:  task.SystemClock,
	}

	if *help {
		printUsage(fs, out)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	subcommand := "ls"
	remaining := fs.Args()
	if len(remaining) > 0 {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	switch subcommand {
	case "help":
		printUsage(fs, out)
		return nil
	case "version":
		return a.versionCommand()
	case "config":
		return a.configCommand(remaining)
	case "init":
		return a.initCommand(remaining)
	}

	handler, ok := a.taskCommands()[subcommand]
	if !ok {
		fmt.Fprintf(errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}

	svc, err := a.openService()
	if err != nil {
		return err
	}
	return handler(ctx, svc, remaining)
}

type taskHandler func(ctx context.Context, svc *service.Service, args []string) error

func (a *app) taskCommands() map[string]taskHandler {
	return map[string]taskHandler{
		"add":    a.addCommand,
		"ls":     a.lsCommand,
		"list":   a.lsCommand,
		"show":   a.showCommand,
		"edit":   a.editCommand,
		"done":   a.doneCommand,
		"rm":     a.rmCommand,
		"delete": a.rmCommand,
		"export": a.exportCommand,
		"tui":    a.tuiCommand,
		"info":   a.infoCommand,
	}
}

// openService builds the repository chosen by configuration.
func (a *app) openService() (*service.Service, error) {
	kind, err := a.cfg.Kind()
	if err != nil {
		return nil, &ExitError{Code: ExitConfig, Err: err}
	}
	repo, err := storage.New(kind, a.cfg.StorageFile, storage.WithLogger(a.logger))
	if err != nil {
		return nil, &ExitError{Code: ExitRepository, Err: fmt.Errorf("opening storage: %w", err)}
	}
	a.logger.Debug("opened storage", "kind", kind, "path", repo.Path())
	return service.New(repo,
		service.WithLogger(a.logger),
		service.WithFactory(task.NewFactory(a.clock, nil)),
	), nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasker - a small console task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasker [global options] <command> [options] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add [-d text] [-due date] <title>   Create a task")
	fmt.Fprintln(w, "  ls [-a] [-completed]                List pending tasks by due date (default command)")
	fmt.Fprintln(w, "  show <id>                           Show one task")
	fmt.Fprintln(w, "  edit <id> [options]                 Change title, description or due date")
	fmt.Fprintln(w, "  done <id>                           Mark a task completed")
	fmt.Fprintln(w, "  rm <id>                             Delete a task")
	fmt.Fprintln(w, "  export [-format yaml|json] [-o file] Export all tasks")
	fmt.Fprintln(w, "  tui                                 Launch the terminal viewer")
	fmt.Fprintln(w, "  info                                Show storage location and counts")
	fmt.Fprintln(w, "  config                              Show effective configuration and sources")
	fmt.Fprintln(w, "  init [-user] [-force]               Write an example tasker.toml")
	fmt.Fprintln(w, "  version                             Show version information")
	fmt.Fprintln(w, "  help                                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dates: YYYY-MM-DD (end of that day), YYYY-MM-DD HH:MM (local time) or RFC 3339.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// flagsSet returns the names of flags given on the command line.
func flagsSet(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// splitID accepts the task id either before or after the flags.
func splitID(fs *flag.FlagSet, args []string) (string, error) {
	var id string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		id, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	rest := fs.Args()
	if id == "" && len(rest) > 0 {
		id, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return "", fmt.Errorf("unexpected arguments: %v", rest)
	}
	if id == "" {
		return "", fmt.Errorf("%s: missing task id", fs.Name())
	}
	return id, nil
}

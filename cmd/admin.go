package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nibzard/tasker-go/internal/config"
	"github.com/nibzard/tasker-go/internal/export"
	"github.com/nibzard/tasker-go/internal/service"
	"github.com/nibzard/tasker-go/internal/ui"
)

// exportCommand writes every task, in storage order, as YAML or JSON.
func (a *app) exportCommand(_ context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	format := fs.String("format", string(export.FormatYAML), "Output format: yaml or json")
	output := fs.String("o", "", "Write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	tasks, err := svc.List(service.ListOptions{})
	if err != nil {
		return err
	}

	if *output == "" {
		return export.Write(a.out, f, tasks)
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, f, tasks); err != nil {
		return err
	}
	if err := os.WriteFile(*output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(a.out, "Exported %d tasks to %s\n", len(tasks), *output)
	return nil
}

func (a *app) tuiCommand(ctx context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	refresh := fs.Duration("refresh", 2*time.Second, "Refresh interval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ui.RunTUI(ctx, svc, ui.WithRefresh(*refresh))
}

func (a *app) infoCommand(_ context.Context, svc *service.Service, _ []string) error {
	repo := svc.Repository()
	st, err := svc.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Storage:   %s\n", repo.Kind())
	fmt.Fprintf(a.out, "File:      %s\n", repo.Path())
	fmt.Fprintf(a.out, "Total:     %d\n", st.Total)
	fmt.Fprintf(a.out, "Pending:   %d\n", st.Pending)
	fmt.Fprintf(a.out, "Completed: %d\n", st.Completed)
	fmt.Fprintf(a.out, "Overdue:   %d\n", st.Overdue)
	return nil
}

// configCommand prints the effective configuration and where each value came from.
func (a *app) configCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("config: unexpected arguments: %v", args)
	}
	for _, key := range config.Fields() {
		source := a.cfg.Sources[key]
		if source == "" {
			source = config.SourceDefault
		}
		fmt.Fprintf(a.out, "%-15s = %-30s (%s)\n", key, a.cfg.Value(key), source)
	}
	if len(a.cfg.Files) == 0 {
		fmt.Fprintln(a.out, "\nNo config files found.")
		return nil
	}
	fmt.Fprintln(a.out, "\nConfig files:")
	for _, f := range a.cfg.Files {
		fmt.Fprintf(a.out, "  %s\n", f)
	}
	return nil
}

// initCommand writes an example config file to the project or user location.
func (a *app) initCommand(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	user := fs.Bool("user", false, "Write the user config instead of ./"+config.FileName)
	force := fs.Bool("force", false, "Overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := config.FileName
	if *user {
		path = config.UserConfigPath()
		if path == "" {
			return errors.New("init: cannot determine user config directory")
		}
	}
	if err := config.WriteExample(path, *force); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use -force to overwrite)", err)
		}
		return err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fmt.Fprintf(a.out, "Wrote %s\n", path)
	return nil
}

func (a *app) versionCommand() error {
	fmt.Fprintf(a.out, "tasker version %s\n", Version)
	return nil
}

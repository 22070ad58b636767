package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nibzard/tasker-go/internal/service"
	"github.com/nibzard/tasker-go/internal/storage"
	"github.com/nibzard/tasker-go/internal/task"
)

const timeLayout = "2006-01-02 15:04"

// addCommand creates a task. The title is the remaining arguments joined by
// spaces.
func (a *app) addCommand(_ context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	desc := fs.String("d", "", "Task description")
	due := fs.String("due", "", "Due date")
	if err := fs.Parse(args); err != nil {
		return err
	}

	draft := task.Draft{Title: strings.Join(fs.Args(), " ")}
	set := flagsSet(fs)
	if set["d"] {
		draft.Description = desc
	}
	if set["due"] {
		d, err := parseDueDate(*due, time.Local)
		if err != nil {
			return err
		}
		draft.DueDate = &d
	}

	t, err := svc.Create(draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created task %s\n", t.ID())
	return nil
}

// lsCommand lists tasks. Pending tasks sorted by due date by default.
func (a *app) lsCommand(_ context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	all := fs.Bool("a", false, "Include completed tasks")
	completedOnly := fs.Bool("completed", false, "Show completed tasks only")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("ls: unexpected arguments: %v", fs.Args())
	}

	tasks, err := svc.List(service.ListOptions{
		PendingOnly: !*all && !*completedOnly,
		SortByDue:   true,
	})
	if err != nil {
		return err
	}
	if *completedOnly {
		tasks = service.RecentlyCompleted(tasks, -1)
	}

	if len(tasks) == 0 {
		switch {
		case *completedOnly:
			fmt.Fprintln(a.out, "No completed tasks.")
		case *all:
			fmt.Fprintln(a.out, "No tasks.")
		default:
			fmt.Fprintln(a.out, "No pending tasks.")
		}
		return nil
	}
	return printTable(a.out, tasks, svc.Now())
}

func (a *app) showCommand(_ context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	id, err := splitID(fs, args)
	if err != nil {
		return err
	}
	t, err := svc.Get(id)
	if err != nil {
		return err
	}
	printTask(a.out, t, svc.Now())
	return nil
}

func (a *app) editCommand(_ context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	title := fs.String("title", "", "New title")
	desc := fs.String("d", "", "New description")
	clearDesc := fs.Bool("clear-description", false, "Remove the description")
	due := fs.String("due", "", "New due date")
	clearDue := fs.Bool("clear-due", false, "Remove the due date")
	id, err := splitID(fs, args)
	if err != nil {
		return err
	}

	var c task.Changes
	set := flagsSet(fs)
	if set["title"] {
		c.Title = title
	}
	if set["d"] {
		c.Description = desc
	}
	if set["due"] {
		d, err := parseDueDate(*due, time.Local)
		if err != nil {
			return err
		}
		c.DueDate = &d
	}
	c.ClearDescription = *clearDesc
	c.ClearDueDate = *clearDue

	t, err := svc.Update(id, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated task %s\n", t.ID())
	return nil
}

func (a *app) doneCommand(_ context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("done", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	id, err := splitID(fs, args)
	if err != nil {
		return err
	}
	t, err := svc.Complete(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Completed task %s\n", t.ID())
	return nil
}

func (a *app) rmCommand(_ context.Context, svc *service.Service, args []string) error {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	id, err := splitID(fs, args)
	if err != nil {
		return err
	}
	canonical, err := task.ParseID(id)
	if err != nil {
		return err
	}
	removed, err := svc.Delete(canonical)
	if err != nil {
		return err
	}
	if !removed {
		repo := svc.Repository()
		return &storage.RepositoryError{Kind: storage.KindNotFound, Op: "delete", Path: repo.Path(), TaskID: canonical}
	}
	fmt.Fprintf(a.out, "Deleted task %s\n", canonical)
	return nil
}

// printTable writes tasks as aligned columns.
func printTable(w io.Writer, tasks []*task.Task, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tDUE\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID(), statusOf(t, now), dueString(t), t.Title())
	}
	return tw.Flush()
}

// printTask writes every field of t, one per line.
func printTask(w io.Writer, t *task.Task, now time.Time) {
	fmt.Fprintf(w, "ID:          %s\n", t.ID())
	fmt.Fprintf(w, "Title:       %s\n", t.Title())
	if d, ok := t.Description(); ok {
		fmt.Fprintf(w, "Description: %s\n", d)
	}
	fmt.Fprintf(w, "Status:      %s\n", statusOf(t, now))
	fmt.Fprintf(w, "Due:         %s\n", dueString(t))
	fmt.Fprintf(w, "Created:     %s\n", t.CreatedAt().Local().Format(timeLayout))
	fmt.Fprintf(w, "Updated:     %s\n", t.UpdatedAt().Local().Format(timeLayout))
}

func statusOf(t *task.Task, now time.Time) string {
	if t.IsOverdue(now) {
		return "overdue"
	}
	return string(t.Status())
}

func dueString(t *task.Task) string {
	if d, ok := t.DueDate(); ok {
		return d.Local().Format(timeLayout)
	}
	return "-"
}

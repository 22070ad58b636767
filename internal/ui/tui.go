// Package ui provides the optional terminal task viewer.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasker-go/internal/service"
	"github.com/nibzard/tasker-go/internal/task"
)

// ErrNotTTY is returned when the viewer is started without a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

const (
	defaultRefresh = 2 * time.Second
	recentLimit    = 5
	dateLayout     = "2006-01-02 15:04"
)

// TUIOption configures the viewer.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	refresh time.Duration
}

// WithRefresh sets how often the file is re-read. Zero disables polling.
func WithRefresh(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		c.refresh = d
	}
}

// RunTUI starts the viewer on the terminal.
func RunTUI(ctx context.Context, svc *service.Service, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}
	c := &tuiConfig{refresh: defaultRefresh}
	for _, opt := range opts {
		opt(c)
	}
	program := tea.NewProgram(newTUIModel(svc, c.refresh), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type filter int

const (
	filterAll filter = iota
	filterPending
	filterCompleted
	filterOverdue
)

func (f filter) String() string {
	switch f {
	case filterPending:
		return "pending"
	case filterCompleted:
		return "completed"
	case filterOverdue:
		return "overdue"
	default:
		return "all"
	}
}

type tuiModel struct {
	svc        *service.Service
	refreshInt time.Duration
	loadErr    error
	actionErr  error
	data       *tuiData
	filter     filter
	cursor     int
	showHelp   bool
	showDetail bool
}

type tuiData struct {
	stats  service.Stats
	all    []*task.Task
	recent []*task.Task
	now    time.Time
}

type tickMsg time.Time

func newTUIModel(svc *service.Service, refresh time.Duration) *tuiModel {
	return &tuiModel{svc: svc, refreshInt: refresh}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.refreshInt)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "enter":
			m.showDetail = !m.showDetail
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case "c":
			m.completeSelected()
		case "1":
			m.setFilter(filterPending)
		case "2":
			m.setFilter(filterCompleted)
		case "3":
			m.setFilter(filterOverdue)
		case "0":
			m.setFilter(filterAll)
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.refreshInt)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.refreshInt)
		return b.String()
	}
	if m.loadErr != nil {
		b.WriteString("Error loading tasks:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.refreshInt)
		return b.String()
	}
	if m.data == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.refreshInt)
		return b.String()
	}

	writeOverview(&b, m.data.stats)
	if m.filter != filterAll {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", m.filter)
	}
	if m.actionErr != nil {
		fmt.Fprintf(&b, "Error: %v\n\n", m.actionErr)
	}

	visible := m.visible()
	writeTasks(&b, visible, m.cursor, m.data.now)
	if m.showDetail && m.cursor < len(visible) {
		writeDetail(&b, visible[m.cursor], m.data.now)
	}
	if m.filter == filterAll {
		writeRecent(&b, m.data.recent)
	}
	repo := m.svc.Repository()
	fmt.Fprintf(&b, "Storage: %s %s\n\n", repo.Kind(), repo.Path())
	writeFooter(&b, m.refreshInt)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	all, err := m.svc.List(service.ListOptions{})
	if err != nil {
		m.loadErr = err
		m.data = nil
		return
	}
	m.loadErr = nil
	m.data = buildTUIData(all, m.svc.Now())
	m.clampCursor()
}

func (m *tuiModel) setFilter(f filter) {
	m.filter = f
	m.cursor = 0
	m.showDetail = false
}

func (m *tuiModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *tuiModel) completeSelected() {
	visible := m.visible()
	if m.cursor >= len(visible) {
		return
	}
	_, m.actionErr = m.svc.Complete(visible[m.cursor].ID())
	m.refresh()
}

// visible returns the tasks shown for the current filter: pending tasks by
// due date, then completed ones.
func (m *tuiModel) visible() []*task.Task {
	if m.data == nil {
		return nil
	}
	var out []*task.Task
	for _, t := range m.data.all {
		switch m.filter {
		case filterPending:
			if t.Completed() {
				continue
			}
		case filterCompleted:
			if !t.Completed() {
				continue
			}
		case filterOverdue:
			if !t.IsOverdue(m.data.now) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func buildTUIData(all []*task.Task, now time.Time) *tuiData {
	var pending, done []*task.Task
	for _, t := range all {
		if t.Completed() {
			done = append(done, t)
		} else {
			pending = append(pending, t)
		}
	}
	task.SortByDueDate(pending)
	task.SortByDueDate(done)

	return &tuiData{
		stats:  service.Summarize(all, now),
		all:    append(pending, done...),
		recent: service.RecentlyCompleted(all, recentLimit),
		now:    now,
	}
}

func writeTitle(b *strings.Builder) {
	title := "tasker"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, st service.Stats) {
	fmt.Fprintf(b, "  Total: %d  Pending: %d  Completed: %d  Overdue: %d\n\n",
		st.Total, st.Pending, st.Completed, st.Overdue)
}

func writeTasks(b *strings.Builder, tasks []*task.Task, cursor int, now time.Time) {
	b.WriteString("Tasks\n\n")
	if len(tasks) == 0 {
		b.WriteString("  No tasks.\n\n")
		return
	}
	for i, t := range tasks {
		marker := " "
		if i == cursor {
			marker = ">"
		}
		b.WriteString(marker + formatTask(t, now) + "\n")
	}
	b.WriteString("\n")
}

func writeDetail(b *strings.Builder, t *task.Task, now time.Time) {
	b.WriteString("Details\n\n")
	fmt.Fprintf(b, "  ID:       %s\n", t.ID())
	fmt.Fprintf(b, "  Title:    %s\n", t.Title())
	if desc, ok := t.Description(); ok {
		fmt.Fprintf(b, "  Notes:    %s\n", desc)
	}
	if due, ok := t.DueDate(); ok {
		fmt.Fprintf(b, "  Due:      %s\n", due.Local().Format(dateLayout))
	}
	fmt.Fprintf(b, "  Status:   %s\n", statusLabel(t, now))
	fmt.Fprintf(b, "  Created:  %s\n", t.CreatedAt().Local().Format(dateLayout))
	fmt.Fprintf(b, "  Updated:  %s\n\n", t.UpdatedAt().Local().Format(dateLayout))
}

func writeRecent(b *strings.Builder, recent []*task.Task) {
	b.WriteString("Recently Completed\n\n")
	if len(recent) == 0 {
		b.WriteString("  No completed tasks yet.\n\n")
		return
	}
	for _, t := range recent {
		fmt.Fprintf(b, "  %s  %s\n", t.UpdatedAt().Local().Format(dateLayout), t.Title())
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload from file\n")
	b.WriteString("  up/k down/j  Move selection\n")
	b.WriteString("  enter        Toggle details\n")
	b.WriteString("  c            Complete selected task\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Show pending\n")
	b.WriteString("  2            Show completed\n")
	b.WriteString("  3            Show overdue\n")
	b.WriteString("  0            Show all\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	if interval <= 0 {
		b.WriteString("Press h for help | q to quit\n")
		return
	}
	fmt.Fprintf(b, "Press h for help | q to quit | Refreshing every %s\n", interval)
}

func statusLabel(t *task.Task, now time.Time) string {
	if t.IsOverdue(now) {
		return "overdue"
	}
	return string(t.Status())
}

func formatTask(t *task.Task, now time.Time) string {
	icon := " "
	switch {
	case t.Completed():
		icon = "x"
	case t.IsOverdue(now):
		icon = "!"
	}
	line := fmt.Sprintf(" [%s] %s  %s", icon, shortID(t.ID()), t.Title())
	if due, ok := t.DueDate(); ok {
		line += "  due " + due.Local().Format(dateLayout)
	}
	return line
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

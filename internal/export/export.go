// Package export writes task lists in portable formats for other tools.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasker-go/internal/task"
)

// Format names an export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Record is the exported shape of a task. Field names match the storage files;
// Status is added for readers that do not want to interpret Completed.
type Record struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description *string    `yaml:"description,omitempty" json:"description,omitempty"`
	DueDate     *time.Time `yaml:"due_date,omitempty" json:"due_date,omitempty"`
	Completed   bool       `yaml:"completed" json:"completed"`
	Status      string     `yaml:"status" json:"status"`
	CreatedAt   time.Time  `yaml:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `yaml:"updated_at" json:"updated_at"`
}

// Records converts tasks to export records, keeping their order.
func Records(tasks []*task.Task) []Record {
	out := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		s := t.Snapshot()
		out = append(out, Record{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			DueDate:     s.DueDate,
			Completed:   s.Completed,
			Status:      string(t.Status()),
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return out
}

// Write encodes tasks to w as a top-level list.
func Write(w io.Writer, format Format, tasks []*task.Task) error {
	records := Records(tasks)
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nibzard/tasker-go/internal/task"
)

// JSONRepository stores tasks as a JSON array of objects.
type JSONRepository struct {
	*fileStore
}

var _ Repository = (*JSONRepository)(nil)

// NewJSON opens the JSON file at path, creating it with "[]" when it is
// missing or empty.
func NewJSON(path string, opts ...Option) (*JSONRepository, error) {
	s, err := newFileStore(path, KindJSON, jsonCodec{}, opts)
	if err != nil {
		return nil, err
	}
	return &JSONRepository{fileStore: s}, nil
}

// jsonRecord is the on-disk shape of one task. Absent optional fields are
// omitted; an explicit null is read as absent.
type jsonRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type jsonCodec struct{}

func (jsonCodec) encode(records []task.Snapshot) ([]byte, error) {
	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		out = append(out, jsonRecord(r))
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return append(data, '\n'), nil
}

func (jsonCodec) decode(data []byte) ([]task.Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse JSON: unexpected data after top-level array")
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var records []jsonRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	out := make([]task.Snapshot, 0, len(records))
	for _, r := range records {
		out = append(out, task.Snapshot(r))
	}
	return out, nil
}

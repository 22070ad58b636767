package storage

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nibzard/tasker-go/internal/task"
)

// XMLRepository stores tasks as a <tasks> document with one <task> element
// per task.
type XMLRepository struct {
	*fileStore
}

var _ Repository = (*XMLRepository)(nil)

// NewXML opens the XML file at path, creating it with an empty <tasks> root
// when it is missing or empty.
func NewXML(path string, opts ...Option) (*XMLRepository, error) {
	s, err := newFileStore(path, KindXML, xmlCodec{}, opts)
	if err != nil {
		return nil, err
	}
	return &XMLRepository{fileStore: s}, nil
}

type xmlDocument struct {
	XMLName xml.Name    `xml:"tasks"`
	Tasks   []xmlRecord `xml:"task"`
}

// xmlRecord is the on-disk shape of one task. Required elements are pointers
// so a missing element can be told apart from an empty one.
type xmlRecord struct {
	ID          *string    `xml:"id"`
	Title       *string    `xml:"title"`
	Description *string    `xml:"description,omitempty"`
	DueDate     *time.Time `xml:"due_date,omitempty"`
	Completed   *bool      `xml:"completed"`
	CreatedAt   *time.Time `xml:"created_at"`
	UpdatedAt   *time.Time `xml:"updated_at"`
}

type xmlCodec struct{}

func (xmlCodec) encode(records []task.Snapshot) ([]byte, error) {
	doc := xmlDocument{Tasks: make([]xmlRecord, 0, len(records))}
	for _, r := range records {
		r := r // per-iteration copy; the record fields below point into r
		doc.Tasks = append(doc.Tasks, xmlRecord{
			ID:          &r.ID,
			Title:       &r.Title,
			Description: r.Description,
			DueDate:     r.DueDate,
			Completed:   &r.Completed,
			CreatedAt:   &r.CreatedAt,
			UpdatedAt:   &r.UpdatedAt,
		})
	}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	return append(out, '\n'), nil
}

func (xmlCodec) decode(data []byte) ([]task.Snapshot, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root, err := rootElement(dec)
	if err != nil {
		return nil, err
	}
	var doc xmlDocument
	if err := dec.DecodeElement(&doc, &root); err != nil {
		return nil, fmt.Errorf("parse XML: %w", err)
	}
	if err := checkTrailing(dec); err != nil {
		return nil, err
	}

	out := make([]task.Snapshot, 0, len(doc.Tasks))
	for i, r := range doc.Tasks {
		if missing := r.missingElement(); missing != "" {
			return nil, &RecordError{Index: i, Err: fmt.Errorf("missing <%s> element", missing)}
		}
		out = append(out, task.Snapshot{
			ID:          *r.ID,
			Title:       *r.Title,
			Description: r.Description,
			DueDate:     r.DueDate,
			Completed:   *r.Completed,
			CreatedAt:   *r.CreatedAt,
			UpdatedAt:   *r.UpdatedAt,
		})
	}
	return out, nil
}

// rootElement skips the prolog and returns the start tag of the root element.
func rootElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, errors.New("parse XML: no root element")
		}
		if err != nil {
			return xml.StartElement{}, fmt.Errorf("parse XML: %w", err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			return tok, nil
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) > 0 {
				return xml.StartElement{}, errors.New("parse XML: unexpected data before root element")
			}
		case xml.EndElement:
			return xml.StartElement{}, fmt.Errorf("parse XML: unexpected </%s>", tok.Name.Local)
		}
	}
}

// checkTrailing allows only whitespace, comments and processing instructions
// after the root element.
func checkTrailing(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse XML: %w", err)
		}
		switch tok := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) > 0 {
				return errTrailingXML
			}
		default:
			return errTrailingXML
		}
	}
}

var errTrailingXML = errors.New("parse XML: unexpected data after root element")

func (r xmlRecord) missingElement() string {
	switch {
	case r.ID == nil:
		return task.FieldID
	case r.Title == nil:
		return task.FieldTitle
	case r.Completed == nil:
		return "completed"
	case r.CreatedAt == nil:
		return task.FieldCreatedAt
	case r.UpdatedAt == nil:
		return task.FieldUpdatedAt
	default:
		return ""
	}
}

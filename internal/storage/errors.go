package storage

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorKind classifies a RepositoryError.
type ErrorKind int

const (
	// KindIO covers read, write and rename failures not classified below.
	KindIO ErrorKind = iota
	// KindNotFound means no task has the requested identifier.
	KindNotFound
	// KindDuplicate means a task with the same identifier is already stored.
	KindDuplicate
	// KindCorrupt means the file exists but cannot be parsed as a task collection.
	KindCorrupt
	// KindMissingFile means the storage file disappeared after initialization.
	KindMissingFile
	// KindPermission means the process may not read or write the file.
	KindPermission
)

// Sentinels matched by errors.Is against a RepositoryError of the same kind.
var (
	ErrIO          = errors.New("storage i/o failure")
	ErrNotFound    = errors.New("task not found")
	ErrDuplicate   = errors.New("task already exists")
	ErrCorrupt     = errors.New("storage file is corrupt")
	ErrMissingFile = errors.New("storage file is missing")
	ErrPermission  = errors.New("storage file permission denied")
)

// ErrUnknownKind is wrapped by ConfigurationError for an unsupported storage type.
var ErrUnknownKind = errors.New("unsupported storage type")

// ErrEmptyPath is wrapped by ConfigurationError when no file name is given.
var ErrEmptyPath = errors.New("storage file must not be empty")

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindDuplicate:
		return "duplicate"
	case KindCorrupt:
		return "corrupt"
	case KindMissingFile:
		return "missing file"
	case KindPermission:
		return "permission"
	default:
		return "io"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindDuplicate:
		return ErrDuplicate
	case KindCorrupt:
		return ErrCorrupt
	case KindMissingFile:
		return ErrMissingFile
	case KindPermission:
		return ErrPermission
	default:
		return ErrIO
	}
}

// RepositoryError describes a failed repository operation.
type RepositoryError struct {
	Kind   ErrorKind
	Op     string // save, find, find_all, update, delete, exists, init
	Path   string
	TaskID string
	Err    error // underlying cause, may be nil
}

func (e *RepositoryError) Error() string {
	msg := e.Op + " " + e.Path
	if e.TaskID != "" {
		msg += " task " + e.TaskID
	}
	msg += ": " + e.Kind.sentinel().Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *RepositoryError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// ConfigurationError reports an invalid backend selection.
type ConfigurationError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Key, e.Value, e.Err)
}

// Unwrap returns the underlying reason.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// RecordError locates a decoding problem at a position in the collection.
type RecordError struct {
	Index int // zero-based position in file order
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("task %d: %s", e.Index, e.Err)
}

// Unwrap returns the underlying reason.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a not-found repository error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// fsError wraps an OS error, classifying missing files and permission problems.
func fsError(op, path string, err error) *RepositoryError {
	kind := KindIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindMissingFile
	case errors.Is(err, fs.ErrPermission):
		kind = KindPermission
	}
	return &RepositoryError{Kind: kind, Op: op, Path: path, Err: err}
}

func corruptError(op, path string, err error) *RepositoryError {
	return &RepositoryError{Kind: KindCorrupt, Op: op, Path: path, Err: err}
}

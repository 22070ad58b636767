package storage

import (
	"path/filepath"
	"strings"
)

// Kind names a storage backend.
type Kind string

const (
	KindJSON Kind = "json"
	KindXML  Kind = "xml"
)

// Kinds lists the supported backends.
func Kinds() []Kind {
	return []Kind{KindJSON, KindXML}
}

// Extension returns the file extension for k, including the dot.
func (k Kind) Extension() string {
	return "." + string(k)
}

// ParseKind parses a storage type name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindJSON:
		return KindJSON, nil
	case KindXML:
		return KindXML, nil
	default:
		return "", &ConfigurationError{Key: "storage_type", Value: s, Err: ErrUnknownKind}
	}
}

// ResolvePath appends the kind's extension to pathBase when pathBase has no
// extension. A path with any extension is used as given.
func ResolvePath(kind Kind, pathBase string) string {
	if filepath.Ext(pathBase) != "" {
		return pathBase
	}
	return pathBase + kind.Extension()
}

// New returns the repository for kind, backed by the file derived from
// pathBase. The file is created when missing.
func New(kind Kind, pathBase string, opts ...Option) (Repository, error) {
	if strings.TrimSpace(pathBase) == "" {
		return nil, &ConfigurationError{Key: "storage_file", Value: pathBase, Err: ErrEmptyPath}
	}
	path := ResolvePath(kind, pathBase)

	var (
		repo Repository
		err  error
	)
	switch kind {
	case KindJSON:
		repo, err = NewJSON(path, opts...)
	case KindXML:
		repo, err = NewXML(path, opts...)
	default:
		return nil, &ConfigurationError{Key: "storage_type", Value: string(kind), Err: ErrUnknownKind}
	}
	if err != nil {
		return nil, err
	}
	return repo, nil
}

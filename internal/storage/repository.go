package storage

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/task"
)

// Repository stores tasks keyed by identifier. Implementations read the
// backing file on every call, so changes made by another process between
// calls are observed.
type Repository interface {
	// Save persists a new task. A task with the same id yields KindDuplicate.
	Save(t *task.Task) error
	// FindByID returns the task with id. ok is false when none exists.
	FindByID(id string) (t *task.Task, ok bool, err error)
	// FindAll returns every stored task in file order.
	FindAll() ([]*task.Task, error)
	// Update replaces the stored task with the same id. A missing id yields KindNotFound.
	Update(t *task.Task) error
	// Delete removes the task with id and reports whether one was removed.
	Delete(id string) (bool, error)
	// Exists reports whether a task with id is stored.
	Exists(id string) (bool, error)
	// Path returns the backing file path.
	Path() string
	// Kind returns the backend kind.
	Kind() Kind
}

// Option configures a repository.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// codec converts between file contents and task snapshots.
type codec interface {
	encode(records []task.Snapshot) ([]byte, error)
	decode(data []byte) ([]task.Snapshot, error)
}

// fileStore implements Repository on top of a codec. Each mutation loads the
// whole collection, changes it in memory and writes it back atomically.
type fileStore struct {
	path   string
	kind   Kind
	codec  codec
	logger *log.Logger
}

func newFileStore(path string, kind Kind, c codec, opts []Option) (*fileStore, error) {
	o := buildOptions(opts)
	s := &fileStore{
		path:   path,
		kind:   kind,
		codec:  c,
		logger: o.logger.With("storage", string(kind)),
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

// init creates the file holding an empty collection when it is missing or
// zero-length. Existing content is left untouched, even if invalid.
func (s *fileStore) init() error {
	created, err := ensureFile(s.path, func() ([]byte, error) {
		return s.codec.encode(nil)
	})
	if err != nil {
		return fsError("init", s.path, err)
	}
	if created {
		s.logger.Info("initialized storage file", "path", s.path)
	}
	return nil
}

func (s *fileStore) Path() string { return s.path }

func (s *fileStore) Kind() Kind { return s.kind }

func (s *fileStore) load(op string) ([]*task.Task, error) {
	data, err := readFile(s.path)
	if err != nil {
		return nil, fsError(op, s.path, err)
	}
	records, err := s.codec.decode(data)
	if err != nil {
		return nil, corruptError(op, s.path, err)
	}

	tasks := make([]*task.Task, 0, len(records))
	for i, r := range records {
		t, err := task.Restore(r)
		if err != nil {
			return nil, corruptError(op, s.path, &RecordError{Index: i, Err: err})
		}
		tasks = append(tasks, t)
	}
	s.logger.Debug("loaded tasks", "op", op, "count", len(tasks))
	return tasks, nil
}

func (s *fileStore) store(op string, tasks []*task.Task) error {
	records := make([]task.Snapshot, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, t.Snapshot())
	}
	data, err := s.codec.encode(records)
	if err != nil {
		return &RepositoryError{Kind: KindIO, Op: op, Path: s.path, Err: err}
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fsError(op, s.path, err)
	}
	s.logger.Debug("stored tasks", "op", op, "count", len(tasks), "bytes", len(data))
	return nil
}

func indexOf(tasks []*task.Task, id string) int {
	return slices.IndexFunc(tasks, func(t *task.Task) bool { return t.ID() == id })
}

func (s *fileStore) Save(t *task.Task) error {
	tasks, err := s.load("save")
	if err != nil {
		return err
	}
	if indexOf(tasks, t.ID()) >= 0 {
		return &RepositoryError{Kind: KindDuplicate, Op: "save", Path: s.path, TaskID: t.ID()}
	}
	return s.store("save", append(tasks, t))
}

func (s *fileStore) FindByID(id string) (*task.Task, bool, error) {
	tasks, err := s.load("find")
	if err != nil {
		return nil, false, err
	}
	if i := indexOf(tasks, id); i >= 0 {
		return tasks[i], true, nil
	}
	return nil, false, nil
}

func (s *fileStore) FindAll() ([]*task.Task, error) {
	return s.load("find_all")
}

func (s *fileStore) Update(t *task.Task) error {
	tasks, err := s.load("update")
	if err != nil {
		return err
	}
	i := indexOf(tasks, t.ID())
	if i < 0 {
		return &RepositoryError{Kind: KindNotFound, Op: "update", Path: s.path, TaskID: t.ID()}
	}
	tasks[i] = t
	return s.store("update", tasks)
}

func (s *fileStore) Delete(id string) (bool, error) {
	tasks, err := s.load("delete")
	if err != nil {
		return false, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return false, nil
	}
	if err := s.store("delete", slices.Delete(tasks, i, i+1)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *fileStore) Exists(id string) (bool, error) {
	tasks, err := s.load("exists")
	if err != nil {
		return false, err
	}
	return indexOf(tasks, id) >= 0, nil
}

package service

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/storage"
	"github.com/nibzard/tasker-go/internal/task"
)

// Service implements the task use cases on top of a Repository.
type Service struct {
	repo    storage.Repository
	factory *task.Factory
	logger  *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithFactory sets the factory used for new tasks and as the time source.
func WithFactory(f *task.Factory) Option {
	return func(s *Service) {
		if f != nil {
			s.factory = f
		}
	}
}

// WithLogger sets the logger for mutation events.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Service backed by repo.
func New(repo storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		factory: task.NewFactory(nil, nil),
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository returns the backing repository.
func (s *Service) Repository() storage.Repository {
	return s.repo
}

// Now returns the current time from the service clock.
func (s *Service) Now() time.Time {
	return s.factory.Clock().Now()
}

// Create validates d, builds a task and saves it.
func (s *Service) Create(d task.Draft) (*task.Task, error) {
	t, err := s.factory.New(d)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(t); err != nil {
		return nil, err
	}
	s.logger.Debug("created task", "id", t.ID(), "title", t.Title())
	return t, nil
}

// ListOptions filters and orders List results.
type ListOptions struct {
	PendingOnly bool // drop completed tasks
	SortByDue   bool // dated tasks first by due date, then undated
}

// List returns stored tasks. Without options tasks come back in storage order.
func (s *Service) List(opts ListOptions) ([]*task.Task, error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	out := all
	if opts.PendingOnly {
		out = make([]*task.Task, 0, len(all))
		for _, t := range all {
			if !t.Completed() {
				out = append(out, t)
			}
		}
	}
	if opts.SortByDue {
		task.SortByDueDate(out)
	}
	return out, nil
}

// Get returns the task with id. An unknown id yields a RepositoryError of
// kind KindNotFound; a malformed id yields a task.ValidationError.
func (s *Service) Get(id string) (*task.Task, error) {
	return s.find("get", id)
}

// Update applies c to the task with id and stores it.
func (s *Service) Update(id string, c task.Changes) (*task.Task, error) {
	t, err := s.find("update", id)
	if err != nil {
		return nil, err
	}
	if err := t.Edit(c, s.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(t); err != nil {
		return nil, err
	}
	s.logger.Debug("updated task", "id", t.ID())
	return t, nil
}

// Complete marks the task with id as completed and stores it.
func (s *Service) Complete(id string) (*task.Task, error) {
	t, err := s.find("complete", id)
	if err != nil {
		return nil, err
	}
	if err := t.Complete(s.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(t); err != nil {
		return nil, err
	}
	s.logger.Debug("completed task", "id", t.ID())
	return t, nil
}

// Delete removes the task with id and reports whether it existed.
func (s *Service) Delete(id string) (bool, error) {
	canonical, err := task.ParseID(id)
	if err != nil {
		return false, err
	}
	removed, err := s.repo.Delete(canonical)
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.Debug("deleted task", "id", canonical)
	}
	return removed, nil
}

func (s *Service) find(op, id string) (*task.Task, error) {
	canonical, err := task.ParseID(id)
	if err != nil {
		return nil, err
	}
	t, ok, err := s.repo.FindByID(canonical)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &storage.RepositoryError{
			Kind:   storage.KindNotFound,
			Op:     op,
			Path:   s.repo.Path(),
			TaskID: canonical,
		}
	}
	return t, nil
}

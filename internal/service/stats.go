package service

import (
	"sort"
	"time"

	"github.com/nibzard/tasker-go/internal/task"
)

// Stats summarizes the stored collection.
type Stats struct {
	Total     int
	Pending   int
	Completed int
	Overdue   int
}

// Summarize counts tasks by state relative to now.
func Summarize(tasks []*task.Task, now time.Time) Stats {
	var st Stats
	for _, t := range tasks {
		st.Total++
		if t.Completed() {
			st.Completed++
			continue
		}
		st.Pending++
		if t.IsOverdue(now) {
			st.Overdue++
		}
	}
	return st
}

// Stats loads the collection and summarizes it.
func (s *Service) Stats() (Stats, error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return Stats{}, err
	}
	return Summarize(all, s.Now()), nil
}

// RecentlyCompleted returns up to limit completed tasks, most recently
// updated first.
func RecentlyCompleted(tasks []*task.Task, limit int) []*task.Task {
	var done []*task.Task
	for _, t := range tasks {
		if t.Completed() {
			done = append(done, t)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].UpdatedAt().After(done[j].UpdatedAt())
	})
	if limit >= 0 && len(done) > limit {
		done = done[:limit]
	}
	return done
}

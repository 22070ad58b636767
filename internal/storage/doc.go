// Package storage persists tasks to a single local file.
//
// Two interchangeable backends implement Repository: JSONRepository keeps a
// flat array of task objects and XMLRepository keeps a <tasks> tree with one
// <task> element per task. Both rewrite the whole file on every mutation by
// writing a temporary sibling file and renaming it over the original, so a
// failed write leaves the previous contents in place.
//
// New selects a backend by Kind and derives the file name from a path base:
//
//	repo, err := storage.New(storage.KindXML, "tasks")
//	// repo.Path() == "tasks.xml"
//
// Every failure is reported as a *RepositoryError whose Kind classifies it.
// errors.Is matches both the kind sentinel (ErrNotFound, ErrCorrupt, ...) and
// the underlying OS or parse error.
package storage

package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

// ErrNoteExists is returned when writing a note over an existing file.
var ErrNoteExists = errors.New("vault: note already exists")

// TaskLoad is the outcome of scanning the task notes. Notes that failed to
// parse are listed in Failures and left out of Tasks.
type TaskLoad struct {
	Tasks    []domain.TaskMetadata
	Failures []*NoteError
}

// TaskStore finds task notes under a root directory.
type TaskStore struct {
	root string
}

// NewTaskStore returns a store rooted at dir.
func NewTaskStore(dir string) *TaskStore {
	return &TaskStore{root: dir}
}

// Root is the directory searched for task notes.
func (s *TaskStore) Root() string { return s.root }

// LoadTasks walks the root recursively and parses every .md note with front
// matter. Notes without front matter are not task notes and are skipped.
// Hidden directories are not entered.
func (s *TaskStore) LoadTasks(ctx context.Context) (TaskLoad, error) {
	var load TaskLoad
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return load.walkFailure(s.root, path, d, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.root && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isNote(path) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			load.Failures = append(load.Failures, &NoteError{Path: path, Err: err})
			return nil
		}
		meta, _, err := ParseTaskNote(path, content)
		switch {
		case errors.Is(err, ErrMissingFrontMatter):
		case err != nil:
			load.Failures = append(load.Failures, &NoteError{Path: path, Err: err})
		default:
			load.Tasks = append(load.Tasks, meta)
		}
		return nil
	})
	if err != nil {
		return TaskLoad{}, fmt.Errorf("loading task notes from %s: %w", s.root, err)
	}
	return load, nil
}

// WriteNote creates <root>/<name>.md from meta and body. It refuses to
// replace an existing note.
func (s *TaskStore) WriteNote(meta domain.TaskMetadata, body []byte) (string, error) {
	name := strings.TrimSpace(meta.Name)
	if name == "" || strings.ContainsAny(name, `/\`) || isHidden(name) {
		return "", fmt.Errorf("%w: note name %q", ErrInvalidProperty, meta.Name)
	}
	content, err := RenderTaskNote(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", s.root, err)
	}

	path := filepath.Join(s.root, name+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrNoteExists, path)
		}
		return "", fmt.Errorf("writing note: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return "", fmt.Errorf("writing note: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing note: %w", err)
	}
	return path, nil
}

// walkFailure records an unreadable entry below root and skips it. Only a
// failure on root itself aborts the load.
func (l *TaskLoad) walkFailure(root, path string, d fs.DirEntry, err error) error {
	if path == root {
		return err
	}
	l.Failures = append(l.Failures, &NoteError{Path: path, Err: err})
	if d != nil && d.IsDir() {
		return filepath.SkipDir
	}
	return nil
}

func isNote(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

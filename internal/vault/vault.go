// Package vault reads and writes the markdown notes tally works from: daily
// planner notes and task notes with YAML front matter.
package vault

import (
	"github.com/alexanderramin/tally/internal/config"
)

// Vault bundles the file collaborators of one configured vault.
type Vault struct {
	Days  *DayFiles
	Tasks *TaskStore
}

// New resolves the note directories from cfg.
func New(cfg config.Config) *Vault {
	return &Vault{
		Days:  NewDayFiles(cfg.DailyNotesDir()),
		Tasks: NewTaskStore(cfg.ProjectDir()),
	}
}

// Watch starts watching both note directories.
func (v *Vault) Watch(opts ...WatchOption) (*Watcher, error) {
	return NewWatcher([]string{v.Days.Dir(), v.Tasks.Root()}, opts...)
}

package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexanderramin/tally/internal/domain"
)

// DayFiles reads day-planner notes named YYYY-MM-DD.md from one directory.
type DayFiles struct {
	dir string
}

// NewDayFiles returns a day source rooted at dir.
func NewDayFiles(dir string) *DayFiles {
	return &DayFiles{dir: dir}
}

// Dir is the directory day notes are read from.
func (d *DayFiles) Dir() string { return d.dir }

// PathFor is the note path of date.
func (d *DayFiles) PathFor(date domain.Date) string {
	return filepath.Join(d.dir, date.String()+".md")
}

// ReadDay returns the note text of date. A missing note is reported with
// found=false and no error.
func (d *DayFiles) ReadDay(ctx context.Context, date domain.Date) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(d.PathFor(date))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading day note: %w", err)
	}
	return string(data), true, nil
}

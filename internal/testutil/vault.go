package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/tally/internal/config"
)

// TestVault is a throwaway vault directory with a daily and a projects folder.
type TestVault struct {
	Root   string
	Config config.Config
}

// NewTestVault creates an empty vault under t.TempDir().
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.VaultPath = root
	v := &TestVault{Root: root, Config: cfg}
	for _, dir := range []string{cfg.DailyNotesDir(), cfg.ProjectDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
	return v
}

// WriteDay writes the planner note of date with one line per entry.
func (v *TestVault) WriteDay(t *testing.T, date string, lines ...string) string {
	t.Helper()
	path := filepath.Join(v.Config.DailyNotesDir(), date+".md")
	writeFile(t, path, "# "+date+"\n\n"+strings.Join(lines, "\n")+"\n")
	return path
}

// WriteTask writes <projects>/<rel>.md with the given front matter lines.
// rel may contain subdirectories.
func (v *TestVault) WriteTask(t *testing.T, rel string, frontMatter ...string) string {
	t.Helper()
	path := filepath.Join(v.Config.ProjectDir(), rel+".md")
	writeFile(t, path, FrontMatter(frontMatter...)+"\nNotes.\n")
	return path
}

// WriteRaw writes content to a path relative to the vault root.
func (v *TestVault) WriteRaw(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(v.Root, rel)
	writeFile(t, path, content)
	return path
}

// FrontMatter fences the given YAML lines.
func FrontMatter(lines ...string) string {
	return fmt.Sprintf("---\n%s\n---\n", strings.Join(lines, "\n"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

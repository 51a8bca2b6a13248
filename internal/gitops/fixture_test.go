package gitops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// fixtureClock hands out strictly increasing commit timestamps so that
// committer-time log ordering is deterministic across a test run.
type fixtureClock struct {
	now time.Time
}

func newFixtureClock() *fixtureClock {
	return &fixtureClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fixtureClock) next() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

func initFixture(t *testing.T) (string, *fixtureClock) {
	t.Helper()
	dir := t.TempDir()
	if _, err := gitlib.PlainInit(dir, false); err != nil {
		t.Fatalf("init fixture repo: %v", err)
	}
	return dir, newFixtureClock()
}

func writeFixtureFile(t *testing.T, dir, path, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// commitFixture writes the given files, stages them, and commits with a
// timestamp from the clock. Returns the full commit hash.
func commitFixture(t *testing.T, dir string, clock *fixtureClock, message string, files map[string]string) string {
	t.Helper()
	repo, err := gitlib.PlainOpen(dir)
	if err != nil {
		t.Fatalf("open fixture repo: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("fixture worktree: %v", err)
	}
	for path, content := range files {
		writeFixtureFile(t, dir, path, content)
		if _, err := wt.Add(path); err != nil {
			t.Fatalf("stage %s: %v", path, err)
		}
	}
	sig := object.Signature{Name: "fixture", Email: "fixture@example.com", When: clock.next()}
	hash, err := wt.Commit(message, &gitlib.CommitOptions{Author: &sig, Committer: &sig})
	if err != nil {
		t.Fatalf("commit %q: %v", message, err)
	}
	return hash.String()
}

func headHash(t *testing.T, dir string) string {
	t.Helper()
	repo, err := gitlib.PlainOpen(dir)
	if err != nil {
		t.Fatalf("open fixture repo: %v", err)
	}
	ref, err := repo.Head()
	if err != nil {
		t.Fatalf("resolve HEAD: %v", err)
	}
	return ref.Hash().String()
}

func readFixtureFile(t *testing.T, dir, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

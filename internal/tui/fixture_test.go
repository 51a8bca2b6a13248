package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/cwfields/grit/internal/config"
)

func initFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := gitlib.PlainInit(dir, false); err != nil {
		t.Fatalf("init fixture repo: %v", err)
	}
	return dir
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

func commitFixture(t *testing.T, dir, message string, files map[string]string) string {
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
	sig := object.Signature{Name: "fixture", Email: "fixture@example.com", When: time.Now()}
	hash, err := wt.Commit(message, &gitlib.CommitOptions{Author: &sig, Committer: &sig})
	if err != nil {
		t.Fatalf("commit %q: %v", message, err)
	}
	return hash.String()
}

func removeFixtureFile(dir, path string) error {
	return os.Remove(filepath.Join(dir, filepath.FromSlash(path)))
}

func testKeys() config.Keybindings {
	return config.DefaultKeybindings()
}

func testTheme() config.Theme {
	return config.DefaultTheme()
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func enterKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func escKey() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func tabKey() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyTab} }

func lastMessage(t *testing.T, log *messageLog) string {
	t.Helper()
	tail := log.tail(1)
	if len(tail) == 0 {
		t.Fatal("expected at least one message")
	}
	return tail[0]
}

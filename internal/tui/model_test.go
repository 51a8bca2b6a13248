package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwfields/grit/internal/config"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := initFixture(t)
	commitFixture(t, dir, "initial", map[string]string{"a.txt": "one\n"})
	return NewModel(dir, config.DefaultConfig(), nil)
}

func pressKey(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next
}

func TestViewRingCyclesThroughAllViews(t *testing.T) {
	m := newTestModel(t)
	if m.ActiveViewTitle() != "Status" {
		t.Fatalf("initial view = %s, want Status", m.ActiveViewTitle())
	}

	wantOrder := []string{"Commit Log", "Branches", "Commit", "Help", "Status"}
	for _, want := range wantOrder {
		m = pressKey(t, m, tabKey())
		if m.ActiveViewTitle() != want {
			t.Fatalf("after tab, active view = %s, want %s", m.ActiveViewTitle(), want)
		}
	}

	messages := m.Messages()
	if len(messages) != len(wantOrder) {
		t.Fatalf("expected %d switch messages, got %v", len(wantOrder), messages)
	}
	for i, want := range wantOrder {
		if messages[i] != "Switched to "+want {
			t.Errorf("messages[%d] = %q, want %q", i, messages[i], "Switched to "+want)
		}
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("expected quit to produce a command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("quit command produced %v, want tea.Quit", msg)
	}
}

func TestHelpJumpAndReturn(t *testing.T) {
	m := newTestModel(t)

	// Move to the Branches view first, then jump to help.
	m = pressKey(t, m, tabKey())
	m = pressKey(t, m, tabKey())
	if m.ActiveViewTitle() != "Branches" {
		t.Fatalf("active view = %s, want Branches", m.ActiveViewTitle())
	}

	m = pressKey(t, m, runeKey("?"))
	if m.ActiveViewTitle() != "Help" {
		t.Fatalf("active view = %s, want Help", m.ActiveViewTitle())
	}

	m = pressKey(t, m, escKey())
	if m.ActiveViewTitle() != "Branches" {
		t.Errorf("esc from help returned to %s, want Branches", m.ActiveViewTitle())
	}

	m = pressKey(t, m, runeKey("?"))
	m = pressKey(t, m, runeKey("?"))
	if m.ActiveViewTitle() != "Branches" {
		t.Errorf("second ? returned to %s, want Branches", m.ActiveViewTitle())
	}
}

func TestHelpKeyIgnoredWhileTyping(t *testing.T) {
	m := newTestModel(t)

	// Enter the commit editor; '?' must feed the input, not jump views.
	m = pressKey(t, m, tabKey())
	m = pressKey(t, m, tabKey())
	m = pressKey(t, m, tabKey())
	if m.ActiveViewTitle() != "Commit" {
		t.Fatalf("active view = %s, want Commit", m.ActiveViewTitle())
	}
	m = pressKey(t, m, runeKey("c"))
	m = pressKey(t, m, runeKey("?"))
	if m.ActiveViewTitle() != "Commit" {
		t.Errorf("? while typing moved to %s", m.ActiveViewTitle())
	}
}

func TestTickRefreshesActiveView(t *testing.T) {
	m := newTestModel(t)
	writeFixtureFile(t, m.repoPath, "fresh.txt", "new\n")

	updated, cmd := m.Update(tickMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	body := m.View()
	if !strings.Contains(body, "fresh.txt") {
		t.Errorf("status view did not pick up fresh.txt after tick:\n%s", body)
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
}

func TestWatcherFailureLogsAndDrops(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(watchErrMsg{err: errString("boom")})
	m = updated.(Model)
	if m.watcher != nil {
		t.Error("watcher should be dropped after a failure")
	}
	if !strings.Contains(lastMessage(t, m.log), "Repository watcher stopped") {
		t.Errorf("unexpected message: %v", m.Messages())
	}
}

type errString string

func (e errString) Error() string { return string(e) }

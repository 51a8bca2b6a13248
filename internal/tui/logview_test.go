package tui

import (
	"strings"
	"testing"
)

func newTestLogView(t *testing.T, dir string) *logView {
	t.Helper()
	v := newLogView(dir, testKeys())
	v.refresh()
	return v
}

func TestLogViewListsOldestFirst(t *testing.T) {
	dir := initFixture(t)
	commitFixture(t, dir, "first", map[string]string{"a.txt": "one\n"})
	commitFixture(t, dir, "second", map[string]string{"a.txt": "two\n"})

	v := newTestLogView(t, dir)
	if len(v.items) != 2 {
		t.Fatalf("items = %d, want 2", len(v.items))
	}
	if v.items[0].Summary != "first" || v.items[1].Summary != "second" {
		t.Errorf("unexpected order: %v", v.items)
	}
}

func TestLogViewDetailOpenAndClose(t *testing.T) {
	dir := initFixture(t)
	first := commitFixture(t, dir, "first", map[string]string{"a.txt": "one\n"})
	commitFixture(t, dir, "second", map[string]string{"a.txt": "two\n"})

	v := newTestLogView(t, dir)
	log := newMessageLog(10)

	v.handleKey(enterKey(), log)
	if v.detail == nil {
		t.Fatal("expected detail after confirm")
	}
	if v.detail.ID != first {
		t.Errorf("detail.ID = %s, want %s", v.detail.ID, first)
	}

	// Every key except cancel is inert while the detail is open.
	v.handleKey(runeKey("j"), log)
	if v.selected != 0 {
		t.Errorf("selection moved while detail open: %d", v.selected)
	}
	v.handleKey(runeKey("r"), log)
	if v.detail == nil {
		t.Error("refresh key should be inert while detail open")
	}

	v.handleKey(escKey(), log)
	if v.detail != nil {
		t.Error("esc should close the detail")
	}
}

func TestLogViewRefreshKey(t *testing.T) {
	dir := initFixture(t)
	commitFixture(t, dir, "first", map[string]string{"a.txt": "one\n"})

	v := newTestLogView(t, dir)
	log := newMessageLog(10)
	commitFixture(t, dir, "second", map[string]string{"a.txt": "two\n"})

	v.handleKey(runeKey("r"), log)
	if got := lastMessage(t, log); got != "Commit logs refreshed." {
		t.Errorf("message = %q", got)
	}
	if len(v.items) != 2 {
		t.Errorf("items = %d after refresh, want 2", len(v.items))
	}
}

func TestLogViewRenderShortensIDs(t *testing.T) {
	dir := initFixture(t)
	full := commitFixture(t, dir, "first", map[string]string{"a.txt": "one\n"})

	v := newTestLogView(t, dir)
	body := v.render(createStyles(testTheme()), 80, 10)
	if !strings.Contains(body, full[:7]) {
		t.Errorf("render missing short id %s:\n%s", full[:7], body)
	}
	if strings.Contains(body, full) {
		t.Errorf("render should not contain the full id:\n%s", body)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abcdef0123"); got != "abcdef0" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("short input should pass through, got %q", got)
	}
}

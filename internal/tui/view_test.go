package tui

import (
	"strings"
	"testing"
)

func TestClampSelection(t *testing.T) {
	cases := []struct {
		selected, count, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{2, 5, 2},
		{5, 5, 4},
		{9, 3, 2},
		{-1, 3, 0},
	}
	for _, c := range cases {
		if got := clampSelection(c.selected, c.count); got != c.want {
			t.Errorf("clampSelection(%d, %d) = %d, want %d", c.selected, c.count, got, c.want)
		}
	}
}

func TestMatches(t *testing.T) {
	keys := testKeys()
	if !matches(keys, "quit", runeKey("q")) {
		t.Error("q should match quit")
	}
	if !matches(keys, "down", runeKey("j")) {
		t.Error("j should match down")
	}
	if matches(keys, "quit", runeKey("x")) {
		t.Error("x should not match quit")
	}
	if matches(keys, "no_such_action", runeKey("q")) {
		t.Error("unknown actions match nothing")
	}
}

func TestRenderListWindowsSelection(t *testing.T) {
	st := createStyles(testTheme())
	items := []string{"one", "two", "three", "four", "five"}

	body := renderList(st, items, 4, 2)
	if !strings.Contains(body, ">> five") {
		t.Errorf("selection marker missing:\n%s", body)
	}
	if strings.Contains(body, "one") {
		t.Errorf("window should scroll past the first item:\n%s", body)
	}
}

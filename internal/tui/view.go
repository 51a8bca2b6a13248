package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwfields/grit/internal/config"
)

// view is the shape every interactive view implements so the shell can
// dispatch uniformly instead of matching on a view tag.
type view interface {
	title() string
	// handleKey interprets one key event; recoverable failures become
	// appended messages, never errors.
	handleKey(msg tea.KeyMsg, log *messageLog)
	// refresh re-derives the item list, replacing prior content entirely
	// and clamping selection. Views without periodic content are no-ops.
	refresh()
	// capturesInput reports whether the view is collecting text, in which
	// case the shell must not steal printable keys.
	capturesInput() bool
	render(st *Styles, width, height int) string
}

// matches reports whether the key event is bound to the named action.
func matches(kb config.Keybindings, action string, msg tea.KeyMsg) bool {
	key := msg.String()
	for _, bound := range kb[action] {
		if key == bound {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// clampSelection keeps a selection index inside the item list after a
// refresh shrank it.
func clampSelection(selected, count int) int {
	if count == 0 {
		return 0
	}
	if selected >= count {
		return count - 1
	}
	if selected < 0 {
		return 0
	}
	return selected
}

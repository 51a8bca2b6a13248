package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// helpView is a static reference card. The shell jumps to it on the help
// key and returns to the previous view on the same key or Esc.
type helpView struct{}

func newHelpView() *helpView { return &helpView{} }

func (v *helpView) title() string                             { return "Help" }
func (v *helpView) capturesInput() bool                       { return false }
func (v *helpView) refresh()                                  {}
func (v *helpView) handleKey(msg tea.KeyMsg, log *messageLog) {}

func (v *helpView) render(st *Styles, width, height int) string {
	text := []string{
		"General:",
		"  q        Quit application",
		"  Tab      Switch between views",
		"  ?        Toggle this help view",
		"",
		"Status View:",
		"  a        Stage the selected file",
		"  Up/Down  Navigate entries",
		"",
		"Log View:",
		"  Enter    Show commit details",
		"  r        Refresh commit logs",
		"",
		"Branch View:",
		"  c        Create a new branch",
		"  d        Delete a branch by name",
		"  m        Merge the selected branch",
		"  Enter    Switch to the selected branch",
		"  Up/Down  Navigate branches",
		"",
		"Commit View:",
		"  c        Write a commit message",
	}
	return st.help.Render(strings.Join(text, "\n"))
}

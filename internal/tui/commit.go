package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwfields/grit/internal/config"
	"github.com/cwfields/grit/internal/gitops"
)

// commitView collects a commit message and commits the staged index.
type commitView struct {
	repoPath string
	keys     config.Keybindings

	writing bool
	input   textinput.Model
}

func newCommitView(repoPath string, keys config.Keybindings) *commitView {
	input := textinput.New()
	input.Prompt = "> "
	return &commitView{repoPath: repoPath, keys: keys, input: input}
}

func (v *commitView) title() string       { return "Commit" }
func (v *commitView) capturesInput() bool { return v.writing }

// refresh is a no-op: the commit view has no periodic content.
func (v *commitView) refresh() {}

func (v *commitView) handleKey(msg tea.KeyMsg, log *messageLog) {
	if !v.writing {
		if matches(v.keys, "write_commit", msg) {
			v.writing = true
			v.input.SetValue("")
			v.input.Focus()
			log.add("Enter your commit message below.")
		}
		return
	}

	switch {
	case matches(v.keys, "confirm", msg):
		message := strings.TrimSpace(v.input.Value())
		if message == "" {
			log.add("Commit message cannot be empty.")
			return
		}
		if err := gitops.CommitChanges(v.repoPath, message); err != nil {
			log.add(fmt.Sprintf("Failed to commit: %v", err))
		} else {
			log.add(fmt.Sprintf("Committed with message: '%s'", message))
		}
		v.endInput()
	case matches(v.keys, "cancel", msg):
		v.endInput()
		log.add("Commit cancelled.")
	default:
		v.input, _ = v.input.Update(msg)
	}
}

func (v *commitView) endInput() {
	v.writing = false
	v.input.SetValue("")
	v.input.Blur()
}

func (v *commitView) render(st *Styles, width, height int) string {
	if v.writing {
		return st.prompt.Render("Enter Commit Message") + "\n" + v.input.View()
	}
	return st.item.Render("Press 'c' to write a commit message.")
}

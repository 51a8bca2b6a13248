package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwfields/grit/internal/config"
	"github.com/cwfields/grit/internal/gitops"
)

type branchMode int

const (
	branchNormal branchMode = iota
	branchCreating
	branchDeleting
)

// branchView lists local branches and drives the branch lifecycle: switch
// on Enter, create on 'c', delete on 'd', merge the selection on 'm'.
type branchView struct {
	repoPath string
	keys     config.Keybindings

	items    []string
	selected int
	mode     branchMode
	input    textinput.Model
	loadErr  string
}

func newBranchView(repoPath string, keys config.Keybindings) *branchView {
	input := textinput.New()
	input.Prompt = "> "
	return &branchView{repoPath: repoPath, keys: keys, input: input}
}

func (v *branchView) title() string       { return "Branches" }
func (v *branchView) capturesInput() bool { return v.mode != branchNormal }

func (v *branchView) handleKey(msg tea.KeyMsg, log *messageLog) {
	switch v.mode {
	case branchNormal:
		v.handleNormalKey(msg, log)
	default:
		v.handleInputKey(msg, log)
	}
}

func (v *branchView) handleNormalKey(msg tea.KeyMsg, log *messageLog) {
	switch {
	case matches(v.keys, "create_branch", msg):
		v.mode = branchCreating
		v.beginInput()
		log.add("Enter new branch name:")
	case matches(v.keys, "delete_branch", msg):
		if len(v.items) == 0 {
			log.add("No branches available to delete.")
			return
		}
		v.mode = branchDeleting
		v.beginInput()
		log.add("Enter branch name to delete:")
	case matches(v.keys, "down", msg):
		if v.selected < len(v.items)-1 {
			v.selected++
		}
	case matches(v.keys, "up", msg):
		if v.selected > 0 {
			v.selected--
		}
	case matches(v.keys, "merge_branch", msg):
		if len(v.items) == 0 {
			return
		}
		name := v.selectedName()
		if err := gitops.MergeBranch(v.repoPath, name); err != nil {
			log.add(fmt.Sprintf("Failed to merge branch: %v", err))
		} else {
			log.add(fmt.Sprintf("Merged branch '%s'.", name))
		}
		v.refresh()
	case matches(v.keys, "confirm", msg):
		if len(v.items) == 0 {
			return
		}
		name := v.selectedName()
		if err := gitops.SwitchBranch(v.repoPath, name); err != nil {
			log.add(fmt.Sprintf("Failed to switch branch: %v", err))
		} else {
			log.add(fmt.Sprintf("Switched to branch '%s'.", name))
		}
		v.refresh()
	}
}

func (v *branchView) handleInputKey(msg tea.KeyMsg, log *messageLog) {
	switch {
	case matches(v.keys, "confirm", msg):
		name := strings.TrimSpace(v.input.Value())
		if name == "" {
			log.add("Branch name cannot be empty.")
		} else if v.mode == branchCreating {
			if err := gitops.CreateBranch(v.repoPath, name); err != nil {
				log.add(fmt.Sprintf("Failed to create branch: %v", err))
			} else {
				log.add(fmt.Sprintf("Branch '%s' created.", name))
			}
			v.refresh()
		} else {
			if err := gitops.DeleteBranch(v.repoPath, name); err != nil {
				log.add(fmt.Sprintf("Failed to delete branch: %v", err))
			} else {
				log.add(fmt.Sprintf("Branch '%s' deleted.", name))
			}
			v.refresh()
		}
		v.endInput()
	case matches(v.keys, "cancel", msg):
		if v.mode == branchCreating {
			log.add("Branch creation cancelled.")
		} else {
			log.add("Branch deletion cancelled.")
		}
		v.endInput()
	default:
		v.input, _ = v.input.Update(msg)
	}
}

func (v *branchView) beginInput() {
	v.input.SetValue("")
	v.input.Focus()
}

func (v *branchView) endInput() {
	v.mode = branchNormal
	v.input.SetValue("")
	v.input.Blur()
}

// selectedName strips the current-branch marker and surrounding whitespace
// from the selected item.
func (v *branchView) selectedName() string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v.items[v.selected]), "* "))
}

func (v *branchView) refresh() {
	branches, err := gitops.LocalBranches(v.repoPath)
	if err != nil {
		v.items = nil
		v.loadErr = fmt.Sprintf("Error retrieving branches: %v", err)
		v.selected = 0
		return
	}
	v.loadErr = ""
	items := make([]string, 0, len(branches))
	for _, b := range branches {
		if b.Current {
			items = append(items, "* "+b.Name)
		} else {
			items = append(items, "  "+b.Name)
		}
	}
	v.items = items
	v.selected = clampSelection(v.selected, len(v.items))
}

func (v *branchView) render(st *Styles, width, height int) string {
	if v.mode != branchNormal {
		label := "Create New Branch"
		if v.mode == branchDeleting {
			label = "Delete Branch"
		}
		return st.prompt.Render(label) + "\n" + v.input.View()
	}
	if v.loadErr != "" {
		return st.errText.Render(v.loadErr)
	}
	if len(v.items) == 0 {
		return st.item.Render("No local branches.")
	}
	return renderList(st, v.items, v.selected, height)
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwfields/grit/internal/config"
	"github.com/cwfields/grit/internal/gitops"
)

type statusMode int

const (
	statusNormal statusMode = iota
	statusConfirmStage
)

// statusView lists working-tree changes and stages the selected entry.
type statusView struct {
	repoPath string
	keys     config.Keybindings

	items    []string
	selected int
	mode     statusMode
	loadErr  string
}

func newStatusView(repoPath string, keys config.Keybindings) *statusView {
	return &statusView{repoPath: repoPath, keys: keys}
}

func (v *statusView) title() string       { return "Status" }
func (v *statusView) capturesInput() bool { return v.mode != statusNormal }

func (v *statusView) handleKey(msg tea.KeyMsg, log *messageLog) {
	switch v.mode {
	case statusNormal:
		switch {
		case matches(v.keys, "down", msg):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case matches(v.keys, "up", msg):
			if v.selected > 0 {
				v.selected--
			}
		case matches(v.keys, "stage", msg):
			if len(v.items) == 0 {
				log.add("No files available to stage.")
				return
			}
			v.mode = statusConfirmStage
			log.add("Press 'Enter' to stage selected file or 'Esc' to cancel.")
		}
	case statusConfirmStage:
		switch {
		case matches(v.keys, "confirm", msg):
			v.stageSelected(log)
			v.mode = statusNormal
		case matches(v.keys, "cancel", msg):
			v.mode = statusNormal
			log.add("Cancelled staging files.")
		}
	}
}

// stageSelected parses the path from the tail of the selected status line,
// after the status-code prefix.
func (v *statusView) stageSelected(log *messageLog) {
	if v.selected >= len(v.items) {
		return
	}
	parts := strings.SplitN(v.items[v.selected], " ", 2)
	if len(parts) != 2 {
		return
	}
	file := strings.TrimSpace(parts[1])
	if err := gitops.AddFiles(v.repoPath, []string{file}); err != nil {
		log.add(fmt.Sprintf("Failed to stage '%s': %v", file, err))
		return
	}
	log.add(fmt.Sprintf("Staged file '%s'.", file))
	v.refresh()
}

func (v *statusView) refresh() {
	lines, err := gitops.StatusLines(v.repoPath)
	if err != nil {
		v.items = nil
		v.loadErr = fmt.Sprintf("Error retrieving status: %v", err)
		v.selected = 0
		return
	}
	v.loadErr = ""
	v.items = lines
	v.selected = clampSelection(v.selected, len(v.items))
}

func (v *statusView) render(st *Styles, width, height int) string {
	if v.loadErr != "" {
		return st.errText.Render(v.loadErr)
	}
	if len(v.items) == 0 {
		return st.item.Render("Nothing to commit, working tree clean.")
	}
	body := renderList(st, v.items, v.selected, height)
	if v.mode == statusConfirmStage {
		prompt := st.prompt.Render(fmt.Sprintf("Stage '%s'? Enter to confirm, Esc to cancel.", tailOf(v.items[v.selected])))
		return body + "\n" + prompt
	}
	return body
}

func tailOf(line string) string {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) != 2 {
		return line
	}
	return strings.TrimSpace(parts[1])
}

// renderList draws items with the selection marked, windowed so the
// selected line stays visible within the given height.
func renderList(st *Styles, items []string, selected, height int) string {
	if height < 1 {
		height = 1
	}
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := start + height
	if end > len(items) {
		end = len(items)
	}
	var lines []string
	for i := start; i < end; i++ {
		if i == selected {
			lines = append(lines, st.selected.Render(">> "+items[i]))
		} else {
			lines = append(lines, st.item.Render("   "+items[i]))
		}
	}
	return strings.Join(lines, "\n")
}

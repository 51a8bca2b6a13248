package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwfields/grit/internal/config"
	"github.com/cwfields/grit/internal/gitops"
)

// logView lists the commit history oldest-first and shows full details for
// the selected commit on demand.
type logView struct {
	repoPath string
	keys     config.Keybindings

	items    []gitops.CommitRecord
	selected int
	detail   *gitops.CommitDetail
	detailVP viewport.Model
	loadErr  string
}

func newLogView(repoPath string, keys config.Keybindings) *logView {
	return &logView{repoPath: repoPath, keys: keys}
}

func (v *logView) title() string       { return "Commit Log" }
func (v *logView) capturesInput() bool { return false }

func (v *logView) handleKey(msg tea.KeyMsg, log *messageLog) {
	if v.detail != nil {
		// All keys are inert while showing detail, except leaving it.
		if matches(v.keys, "cancel", msg) {
			v.detail = nil
		}
		return
	}

	switch {
	case matches(v.keys, "down", msg):
		if v.selected < len(v.items)-1 {
			v.selected++
		}
	case matches(v.keys, "up", msg):
		if v.selected > 0 {
			v.selected--
		}
	case matches(v.keys, "confirm", msg):
		if len(v.items) == 0 {
			return
		}
		detail, err := gitops.GetCommitDetail(v.repoPath, v.items[v.selected].ID)
		if err != nil {
			log.add(fmt.Sprintf("Failed to load commit: %v", err))
			return
		}
		v.detail = &detail
	case matches(v.keys, "refresh", msg):
		v.refresh()
		log.add("Commit logs refreshed.")
	}
}

func (v *logView) refresh() {
	records, err := gitops.ListCommits(v.repoPath)
	if err != nil {
		v.items = nil
		v.loadErr = fmt.Sprintf("Error reading log: %v", err)
		v.selected = 0
		return
	}
	v.loadErr = ""
	v.items = records
	v.selected = clampSelection(v.selected, len(v.items))
}

func (v *logView) render(st *Styles, width, height int) string {
	if v.detail != nil {
		return v.renderDetail(st, width, height)
	}
	if v.loadErr != "" {
		return st.errText.Render(v.loadErr)
	}
	if len(v.items) == 0 {
		return st.item.Render("No commits yet.")
	}
	lines := make([]string, 0, len(v.items))
	for _, record := range v.items {
		lines = append(lines, fmt.Sprintf("%s %s [%s] - %s",
			shortID(record.ID), record.Author, record.Date, record.Summary))
	}
	return renderList(st, lines, v.selected, height)
}

func (v *logView) renderDetail(st *Styles, width, height int) string {
	detail := v.detail
	content := strings.Join([]string{
		"Commit ID: " + detail.ID,
		"Author: " + detail.Author,
		"Date: " + detail.Date,
		"",
		"Message:",
		detail.Message,
		"",
		"Parents:",
		strings.Join(detail.Parents, ", "),
	}, "\n")

	v.detailVP.Width = width
	v.detailVP.Height = maxInt(1, height-1)
	v.detailVP.SetContent(st.item.Render(content))
	return st.prompt.Render("Commit Details") + "\n" + v.detailVP.View()
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

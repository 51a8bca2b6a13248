package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cwfields/grit/internal/config"
)

const messagePaneLines = 5

// Model is the application shell: it owns the cyclic view ring, the
// bounded message log, the periodic tick, and global key handling. All
// other keys are forwarded to the active view.
type Model struct {
	cfg      *config.Config
	styles   *Styles
	repoPath string

	views    []view
	active   int
	lastView int

	log     *messageLog
	watcher *RepoWatcher

	width  int
	height int
}

// NewModel builds the shell with the fixed view ring
// {Status, Log, Branch, Commit, Help} and the Status view active.
func NewModel(repoPath string, cfg *config.Config, watcher *RepoWatcher) Model {
	keys := cfg.Keybindings
	m := Model{
		cfg:      cfg,
		styles:   createStyles(cfg.Theme),
		repoPath: repoPath,
		views: []view{
			newStatusView(repoPath, keys),
			newLogView(repoPath, keys),
			newBranchView(repoPath, keys),
			newCommitView(repoPath, keys),
			newHelpView(),
		},
		log:     newMessageLog(cfg.MessageCapacity),
		watcher: watcher,
		width:   80,
		height:  24,
	}
	for _, v := range m.views {
		v.refresh()
	}
	return m
}

func (m Model) helpIndex() int { return len(m.views) - 1 }

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.views[m.active].refresh()
		return m, m.tickCmd()

	case repoChangedMsg:
		m.views[m.active].refresh()
		if m.watcher != nil {
			return m, m.watcher.wait()
		}
		return m, nil

	case watchErrMsg:
		m.log.add(fmt.Sprintf("Repository watcher stopped: %v", msg.err))
		m.watcher = nil
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keybindings

	// The quit key terminates before any view dispatch, whatever state the
	// active view is in.
	if matches(keys, "quit", msg) {
		if m.watcher != nil {
			m.watcher.close()
		}
		return m, tea.Quit
	}

	if matches(keys, "switch_view", msg) {
		m.active = (m.active + 1) % len(m.views)
		m.log.add(fmt.Sprintf("Switched to %s", m.views[m.active].title()))
		return m, nil
	}

	active := m.views[m.active]

	if !active.capturesInput() && matches(keys, "help", msg) {
		if m.active == m.helpIndex() {
			m.active = m.lastView
		} else {
			m.lastView = m.active
			m.active = m.helpIndex()
		}
		return m, nil
	}
	if m.active == m.helpIndex() && matches(keys, "cancel", msg) {
		m.active = m.lastView
		return m, nil
	}

	active.handleKey(msg, m.log)
	return m, nil
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View renders the UI
func (m Model) View() string {
	st := m.styles

	title := st.title.Width(m.width).Render("grit: a terminal git interface")
	footer := st.footer.Width(m.width).Render("Press 'q' to exit | Tab to switch views | ? for help")

	messages := m.renderMessages()

	// Fixed title, footer, and message pane; the main region takes the
	// remaining height.
	mainHeight := m.height - 1 - 1 - (messagePaneLines + 2) - 2
	if mainHeight < 3 {
		mainHeight = 3
	}
	contentWidth := maxInt(20, m.width-4)

	active := m.views[m.active]
	header := st.prompt.Render(active.title())
	body := active.render(st, contentWidth, mainHeight-1)
	main := st.pane.Width(m.width - 2).Height(mainHeight).Render(header + "\n" + body)

	return lipgloss.JoinVertical(lipgloss.Left, title, main, messages, footer)
}

// renderMessages draws the most recent log entries, oldest first.
func (m Model) renderMessages() string {
	tail := m.log.tail(messagePaneLines)
	content := strings.Join(tail, "\n")
	return m.styles.pane.Width(m.width - 2).Height(messagePaneLines).Render(
		m.styles.message.Render(content),
	)
}

// Messages exposes the log for inspection.
func (m Model) Messages() []string {
	return m.log.tail(m.log.len())
}

// ActiveViewTitle names the currently active view.
func (m Model) ActiveViewTitle() string {
	return m.views[m.active].title()
}

package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const watchSettle = 150 * time.Millisecond

// RepoWatcher turns filesystem events under the repository into refresh
// messages, so external changes show up before the next tick.
type RepoWatcher struct {
	watcher *fsnotify.Watcher
}

// NewRepoWatcher watches the worktree root and the ref/HEAD areas of the
// git directory.
func NewRepoWatcher(repoPath string) (*RepoWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	for _, path := range watchPaths(repoPath) {
		if err := watcher.Add(path); err != nil {
			slog.Debug("skipping watch path", slog.String("path", path), slog.Any("error", err))
		}
	}
	return &RepoWatcher{watcher: watcher}, nil
}

func watchPaths(repoPath string) []string {
	paths := []string{repoPath}
	gitDir := filepath.Join(repoPath, ".git")
	if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
		paths = append(paths,
			gitDir,
			filepath.Join(gitDir, "refs", "heads"),
		)
	}
	return paths
}

// wait blocks until the repository changes, coalescing bursts of events
// into a single refresh.
func (w *RepoWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case _, ok := <-w.watcher.Events:
			if !ok {
				return watchErrMsg{err: fmt.Errorf("watcher closed")}
			}
			time.Sleep(watchSettle)
			for {
				select {
				case <-w.watcher.Events:
				default:
					return repoChangedMsg{}
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return watchErrMsg{err: fmt.Errorf("watcher closed")}
			}
			return watchErrMsg{err: err}
		}
	}
}

func (w *RepoWatcher) close() {
	if w.watcher != nil {
		w.watcher.Close()
	}
}

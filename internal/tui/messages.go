package tui

import "time"

// tickMsg triggers the periodic refresh of the active view.
type tickMsg time.Time

// repoChangedMsg reports a filesystem event under the repository.
type repoChangedMsg struct{}

// watchErrMsg reports a watcher failure; the watcher is dropped afterwards.
type watchErrMsg struct{ err error }

// messageLog is the append-only message pane backing store, bounded by a
// fixed capacity: the oldest entry is evicted first.
type messageLog struct {
	capacity int
	entries  []string
}

func newMessageLog(capacity int) *messageLog {
	if capacity < 1 {
		capacity = 1
	}
	return &messageLog{capacity: capacity}
}

func (l *messageLog) add(text string) {
	l.entries = append(l.entries, text)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// tail returns up to n of the most recent entries, oldest first.
func (l *messageLog) tail(n int) []string {
	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	return l.entries[len(l.entries)-n:]
}

func (l *messageLog) len() int { return len(l.entries) }

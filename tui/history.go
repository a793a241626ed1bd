// Package tui provides a Bubble Tea terminal UI for the bossrush hub.
package tui

// History keeps the most recent commands for Up/Down recall.
type History struct {
	entries []string
	max     int
	pos     int // len(entries) while not browsing
}

// NewHistory creates a history holding at most max commands.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Push records a command and stops browsing. Repeating the previous
// command does not add a new entry.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != cmd {
		h.entries = append(h.entries, cmd)
		if len(h.entries) > h.max {
			h.entries = h.entries[len(h.entries)-h.max:]
		}
	}
	h.pos = len(h.entries)
}

// Prev steps back to an older command, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next steps forward to a newer command. Stepping past the newest
// returns ("", false) and ends browsing.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return "", false
	}
	return h.entries[h.pos], true
}

// Len returns the number of stored commands.
func (h *History) Len() int {
	return len(h.entries)
}

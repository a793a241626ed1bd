package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/bossrush/engine"
)

// statusText builds the left and right halves of the status bar. The
// right half drops to a compact form when both halves do not fit.
func statusText(st engine.Status, width int) (string, string) {
	left := " No active run"
	if st.Active {
		left = fmt.Sprintf(" %s | Boss %d | Potions %d", st.Kit, st.Boss, st.Potions)
	}

	right := fmt.Sprintf("Souls %d | Points %d | Runs %d | Best %d ",
		st.Souls, st.Points, st.Runs, st.BestStreak)
	if lipgloss.Width(left)+lipgloss.Width(right)+2 > width {
		right = fmt.Sprintf("S:%d P:%d ", st.Souls, st.Points)
	}
	return left, right
}

// renderStatusBar produces a full-width inverted status line showing the
// active run, currency, and lifetime stats.
func (m Model) renderStatusBar() string {
	st := m.engine.Status()
	left, right := statusText(st, m.width)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	style := styleStatusBar
	if !st.Active {
		style = styleStatusIdle
	}
	return style.Width(m.width).Render(bar)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusIdle = styleStatusBar.
			Foreground(lipgloss.Color("243"))

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110")).
			Bold(true)

	styleGain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	styleVictory = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78")).
			Bold(true)

	styleDefeat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("167")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindText lineKind = iota
	kindHeader
	kindGain
	kindVictory
	kindDefeat
	kindSystem
	kindError
	kindTrace
)

var errorPrefixes = []string{
	"no active run", "no item called", "no talent called", "no kit called",
	"no slot called", "no branch called", "which ", "start as which",
	"I don't know how", "You don't own", "You already own", "Nothing is equipped",
	"There is no run", "Potions are carried", "boss number must",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "+"):
		return kindGain
	case strings.HasSuffix(line, "defeated!"), strings.HasPrefix(line, "Victory"):
		return kindVictory
	case strings.HasPrefix(line, "You fall"), strings.HasPrefix(line, "You fell"):
		return kindDefeat
	case isError(line):
		return kindError
	case isHeader(line):
		return kindHeader
	default:
		return kindText
	}
}

func isError(line string) bool {
	for _, p := range errorPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return strings.Contains(line, "; you have ") || strings.HasSuffix(line, "could not be saved.")
}

// isHeader matches shop and talent section titles such as "WEAPON".
func isHeader(line string) bool {
	if len(line) < 2 || strings.ContainsAny(line, " 0123456789") {
		return false
	}
	return strings.ToUpper(line) == line && strings.ToLower(line) != line
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindHeader:
		return styleHeader.Render(line)
	case kindGain:
		return styleGain.Render(line)
	case kindVictory:
		return styleVictory.Render(line)
	case kindDefeat:
		return styleDefeat.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleText.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}

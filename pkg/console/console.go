package console

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Mode selects between plain and styled output. A single mode is
// threaded through every render call of one report; the two are never
// mixed within a report.
type Mode int

const (
	// ModePlain renders without any decoration.
	ModePlain Mode = iota
	// ModeStyled renders with terminal colors and emphasis.
	ModeStyled
)

// DetectMode returns ModeStyled when stdout is a terminal.
func DetectMode() Mode {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return ModeStyled
	}
	return ModePlain
}

// Styles for diagnostic rendering and status messages
var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	headlineStyle = lipgloss.NewStyle().
			Bold(true)

	gutterStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	noteStyle = lipgloss.NewStyle().
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))
)

// applyStyle decorates text when the mode is styled.
func applyStyle(mode Mode, style lipgloss.Style, text string) string {
	if mode == ModeStyled {
		return style.Render(text)
	}
	return text
}

// ToRelativePath converts an absolute path to a relative path from the
// current working directory, falling back to the original on error.
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}

	return relPath
}

// Normalize lowercases the first letter of a message and strips a
// trailing '.', '?' or '!'. Shared by diagnostic notes and error text.
func Normalize(message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return message
	}

	runes := []rune(message)
	runes[0] = []rune(strings.ToLower(string(runes[0])))[0]

	last := runes[len(runes)-1]
	if last == '.' || last == '?' || last == '!' {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

// FormatErrorMessage formats a one-line error message for stderr.
func FormatErrorMessage(message string) string {
	return applyStyle(DetectMode(), errorStyle, "✗ ") + message
}

// FormatSuccessMessage formats a success message.
func FormatSuccessMessage(message string) string {
	return applyStyle(DetectMode(), successStyle, "✓ ") + message
}

// FormatInfoMessage formats an informational message.
func FormatInfoMessage(message string) string {
	return applyStyle(DetectMode(), infoStyle, "ℹ ") + message
}

// FormatWarningMessage formats a warning message.
func FormatWarningMessage(message string) string {
	return applyStyle(DetectMode(), warningStyle, "⚠ ") + message
}

package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme defines the colour palette for reports.
type Theme struct {
	// Heading is the colour of section titles.
	Heading lipgloss.Color

	// Added marks added requirements and files.
	Added lipgloss.Color

	// Deleted marks deleted requirements and files.
	Deleted lipgloss.Color

	// Modified marks modified requirements and changed pairs.
	Modified lipgloss.Color

	// Error marks failed pairs and invalid files.
	Error lipgloss.Color

	// Muted is for unchanged entries.
	Muted lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Heading:  lipgloss.Color("#7C3AED"), // Purple
		Added:    lipgloss.Color("#A6E3A1"), // Green
		Deleted:  lipgloss.Color("#F38BA8"), // Red
		Modified: lipgloss.Color("#F9E2AF"), // Yellow
		Error:    lipgloss.Color("#EBA0AC"), // Maroon
		Muted:    lipgloss.Color("#6C7086"), // Medium gray
	}
}

// Styles contains pre-configured lipgloss styles for report lines.
type Styles struct {
	Heading  lipgloss.Style
	Rate     lipgloss.Style
	Added    lipgloss.Style
	Deleted  lipgloss.Style
	Modified lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Styles{
		Heading:  lipgloss.NewStyle().Foreground(theme.Heading).Bold(true),
		Rate:     lipgloss.NewStyle().Bold(true),
		Added:    lipgloss.NewStyle().Foreground(theme.Added),
		Deleted:  lipgloss.NewStyle().Foreground(theme.Deleted),
		Modified: lipgloss.NewStyle().Foreground(theme.Modified),
		Error:    lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// render styles a plain-text summary when w is a terminal and returns it
// unchanged otherwise.
func render(w io.Writer, text string) string {
	if !isTerminal(w) {
		return text
	}
	return NewStyles(nil).Summary(text)
}

// Summary colours a plain-text report line by line. Marker lines are
// coloured according to the section they appear in.
func (s *Styles) Summary(text string) string {
	lines := strings.Split(text, "\n")
	section := ""
	for i, line := range lines {
		switch {
		case isRule(line):
			lines[i] = s.Muted.Render(line)
		case isHeading(line):
			section = line
			lines[i] = s.Heading.Render(line)
		case strings.HasPrefix(line, "Overall Change Rate"):
			lines[i] = s.Rate.Render(line)
		default:
			if st, ok := s.markerStyle(section, line); ok {
				lines[i] = st.Render(line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Styles) markerStyle(section, line string) (lipgloss.Style, bool) {
	trimmed := strings.TrimLeft(line, " ")
	switch {
	case strings.HasPrefix(section, "Added") && strings.HasPrefix(trimmed, "+ "):
		return s.Added, true
	case strings.HasPrefix(section, "Deleted") && strings.HasPrefix(trimmed, "- "):
		return s.Deleted, true
	case strings.HasPrefix(section, "Modified") && strings.HasPrefix(trimmed, "~ "):
		return s.Modified, true
	case strings.HasPrefix(section, "Matched"):
		switch {
		case strings.HasPrefix(trimmed, "~ "):
			return s.Modified, true
		case strings.HasPrefix(trimmed, "! "):
			return s.Error, true
		case strings.HasPrefix(trimmed, "= "):
			return s.Muted, true
		}
	}
	return lipgloss.Style{}, false
}

func isHeading(line string) bool {
	return line != "" && line[0] != ' ' && !strings.HasPrefix(line, "- ") &&
		strings.HasSuffix(line, ":")
}

func isRule(line string) bool {
	return line != "" && strings.Trim(line, "=-") == ""
}

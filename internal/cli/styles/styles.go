// Package styles holds the lipgloss styles used for human-readable CLI output
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette names the colors the styles are built from (ANSI 256 codes or hex)
type Palette struct {
	Accent  string
	Title   string
	Subtle  string
	Normal  string
	Success string
	Error   string
	Warning string
}

// DefaultPalette is used unless Init is called with another one
var DefaultPalette = Palette{
	Accent:  "33",
	Title:   "15",
	Subtle:  "245",
	Normal:  "252",
	Success: "42",
	Error:   "196",
	Warning: "214",
}

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 72

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Deadline:"
	ValueStyle    lipgloss.Style // For field values

	// Status styles
	DoneStyle    lipgloss.Style
	PendingStyle lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
)

func init() {
	Init(DefaultPalette)
}

// Init initializes all CLI styles with the given palette
func Init(colors Palette) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(0, 1).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	DoneStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Success))

	PendingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Warning))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Success))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Error))

	WarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Warning))
}

// Field renders "Label: value"
func Field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// Checkbox renders a task completion marker
func Checkbox(done bool) string {
	if done {
		return DoneStyle.Render("[x]")
	}
	return PendingStyle.Render("[ ]")
}

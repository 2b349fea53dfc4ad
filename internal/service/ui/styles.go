package ui

import "github.com/charmbracelet/lipgloss"

// Plain ANSI colors so the styles survive any terminal palette.
var (
	// TitleStyle ANSI 6 (Cyan) for headings
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (Green) for arguments and usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Bright Black / Gray) for descriptions
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow) for flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// SectionStyle heads each specialist's output in CLI results
	SectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)

	// FinalStyle highlights the synthesized diagnosis
	FinalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)

	// MetaStyle for session ids, timestamps and file paths
	MetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// SpinnerStyle for the analysis progress indicator
	SpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
)

package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: calm classroom colors on a dark background.
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#10B981") // Emerald
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F1F5F9") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	ActiveCard = Card.
			BorderForeground(Primary)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Checked = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Busy = lipgloss.NewStyle().
		Foreground(Accent).
		Italic(true)
)

// Components
var (
	TabActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 2)

	ScoreFilled = lipgloss.NewStyle().
			Background(Secondary)

	ScoreEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	ToastSuccess = lipgloss.NewStyle().
			Background(Success).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ToastError = lipgloss.NewStyle().
			Background(Error).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)
)

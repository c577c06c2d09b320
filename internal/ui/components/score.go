package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/ui/theme"
)

// ScoreBar draws a 0-10 score as a horizontal bar followed by its value.
type ScoreBar struct {
	Label string
	Score instrument.Score
	Width int
}

// View renders the bar. An undefined score leaves the bar empty.
func (s ScoreBar) View() string {
	result := theme.Label.Render(s.Label) + "  "
	value := s.Score.String()

	barWidth := s.Width - lipgloss.Width(result) - len([]rune(value)) - 2
	if barWidth < 4 {
		barWidth = 4
	}

	filled := 0
	if v, ok := s.Score.Value(); ok {
		filled = int(float64(barWidth) * v / 10)
	}
	filled = max(0, min(filled, barWidth))

	result += theme.ScoreFilled.Render(strings.Repeat(" ", filled)) +
		theme.ScoreEmpty.Render(strings.Repeat(" ", barWidth-filled))

	return result + "  " + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(value)
}

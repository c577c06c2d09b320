package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/eduval/eduval/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 20

	CompactWidthThreshold = 110
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether secondary details such as descriptions
// are dropped.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the header bar: app name, screen title and, when
// non-empty, the score of the active instrument.
func RenderHeader(title, scoreLabel, score string, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  eduval")

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	right := ""
	if score != "" {
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(scoreLabel+" ") +
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(score)
	}

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	innerWidth := width - 4
	if innerWidth < 0 {
		innerWidth = 0
	}

	leftGap := (innerWidth-centerLen)/2 - leftLen
	if leftGap < 1 {
		leftGap = 1
	}
	rightGap := innerWidth - leftLen - leftGap - centerLen - rightLen
	if rightGap < 1 {
		rightGap = 1
	}

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFooter renders the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, with an optional
// overlay line (a toast) right above the footer.
func RenderFrame(header, content, overlay, footer string, width, height int) string {
	contentHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if overlay != "" {
		contentHeight -= lipgloss.Height(overlay)
	}
	if contentHeight < 0 {
		contentHeight = 0
	}

	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	parts := []string{header, body}
	if overlay != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Center, overlay))
	}
	parts = append(parts, footer)
	return strings.Join(parts, "\n")
}

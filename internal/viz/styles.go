package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles holds every lipgloss style the model renders with. It is rebuilt
// whenever the theme changes.
type styles struct {
	canvas   lipgloss.Style
	stats    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	running  lipgloss.Style
	stopped  lipgloss.Style
	graph    lipgloss.Style
	selected lipgloss.Style
	help     lipgloss.Style
	subtle   lipgloss.Style
	overlay  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(1, 2).Foreground(t.Alive),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(42),
		header:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		running:  lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		stopped:  lipgloss.NewStyle().Foreground(t.Stopped).Bold(true),
		graph:    lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		selected: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		help:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Secondary).
			Foreground(t.Text).
			Padding(0, 2),
	}
}

// kindStyle colours palette entries by pattern kind.
func kindStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// ProgressBar renders a fill ratio in [0, 1] as a fixed-width bar.
func ProgressBar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Sparkline renders the last width values as block characters scaled
// between their minimum and maximum.
func Sparkline(values []int, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := max(hi-lo, 1)

	var b strings.Builder
	for _, v := range values {
		b.WriteRune(chars[(v-lo)*(len(chars)-1)/span])
	}
	return b.String()
}

func Separator(width int) string {
	if width < 8 {
		return strings.Repeat("─", max(width, 0))
	}
	mid := width / 2
	return strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3)
}

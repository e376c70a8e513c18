package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const bubbleWidth = 24

type Styles struct {
	Sprite   lipgloss.Style
	Alert    lipgloss.Style
	Bubble   lipgloss.Style
	Progress lipgloss.Style
	Header   lipgloss.Style
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
	Panel    lipgloss.Style
}

func color(colors map[string]string, name, fallback string) lipgloss.Color {
	if c, ok := colors[name]; ok && c != "" {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(fallback)
}

func DefaultStyles(colors map[string]string) Styles {
	return Styles{
		Sprite: lipgloss.NewStyle().
			Foreground(color(colors, "sprite", "39")),
		Alert: lipgloss.NewStyle().
			Foreground(color(colors, "alert", "203")).
			Bold(true),
		Bubble: lipgloss.NewStyle().
			Foreground(color(colors, "bubble", "231")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(color(colors, "alert", "203")).
			Padding(0, 1),
		Progress: lipgloss.NewStyle().
			Foreground(color(colors, "progress", "45")),
		Header: lipgloss.NewStyle().
			Foreground(color(colors, "header", "220")).
			Bold(true).
			Underline(true),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(color(colors, "header", "220")).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(color(colors, "help", "241")),
		Message: lipgloss.NewStyle().
			Foreground(color(colors, "message", "220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
	}
}

// progressBar renders current/goal as a bar width cells wide.
func progressBar(current, goal, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if goal > 0 {
		filled = min(current, goal) * width / goal
	}
	filled = max(filled, 0)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// speechBubble wraps text to the bubble width. Words longer than a line are
// cut rather than overflowing the border.
func speechBubble(text string) string {
	wrapped := wordwrap.String(text, bubbleWidth)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		if ansi.PrintableRuneWidth(line) > bubbleWidth {
			lines[i] = truncate.StringWithTail(line, bubbleWidth, "…")
		}
	}
	return strings.Join(lines, "\n")
}

func formatMl(ml int) string {
	if ml >= 1000 && ml%100 == 0 {
		return fmt.Sprintf("%.1f l", float64(ml)/1000)
	}
	return fmt.Sprintf("%d ml", ml)
}

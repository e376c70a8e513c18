package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwarden/dew/internal/anim"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.closed {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var body string
	switch m.mode {
	case ViewHelp:
		body = m.viewHelp()
	case ViewSetup:
		body = m.viewSetup()
	default:
		body = m.viewPet()
	}

	canvas := lipgloss.Place(m.width, m.height-1, lipgloss.Left, lipgloss.Top, body)
	return lipgloss.JoinVertical(lipgloss.Left, canvas, m.renderStatusBar())
}

func (m *Model) viewPet() string {
	style := m.styles.Sprite
	if m.engine.State() == anim.StateAlertDrag {
		style = m.styles.Alert
	}
	pet := style.Width(m.spriteW).Render(m.frame)

	var side string
	switch {
	case m.mode == ViewLog:
		side = m.viewLog()
	case m.scheduler.Visible():
		side = m.styles.Bubble.Render(speechBubble(m.config.ReminderMessage))
	}
	if side != "" {
		pet = lipgloss.JoinHorizontal(lipgloss.Top, pet, " ", side)
	}

	return lipgloss.NewStyle().
		MarginLeft(m.x).
		MarginTop(m.y).
		Render(pet)
}

func (m *Model) viewLog() string {
	goal := m.ledger.DailyGoalMl()
	current := m.ledger.CurrentIntakeMl()

	lines := []string{
		m.styles.Normal.Render(fmt.Sprintf("Log %d ml water?", m.ledger.SipAmountMl())),
		m.styles.Progress.Render(progressBar(current, goal, 20)),
		m.styles.Normal.Render(fmt.Sprintf("%d/%d ml", current, goal)),
		"",
		m.styles.Help.Render("Enter drink · Esc close"),
	}

	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) viewSetup() string {
	field := func(label, value string, selected bool) string {
		if selected {
			return fmt.Sprintf("%-16s %s", label, m.styles.Selected.Render(value+"█"))
		}
		return fmt.Sprintf("%-16s %s", label, m.styles.Normal.Render(value))
	}

	lines := []string{
		m.styles.Header.Render("Dew - Setup"),
		"",
		field("Daily Goal (ml)", m.goalInput, m.setupField == 0),
		field("Sip Amount (ml)", m.sipInput, m.setupField == 1),
		"",
		m.styles.Help.Render("Accepts 2000, 2l, 33cl, 8oz"),
		m.styles.Help.Render("Tab switch field · Enter save · Esc cancel"),
	}

	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) viewHelp() string {
	key := func(action string) string {
		var keys []string
		for k, a := range m.config.KeyBindings {
			if a == action {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			return "-"
		}
		sort.Strings(keys)
		return strings.Join(keys, "/")
	}

	help := []string{
		m.styles.Header.Render("Dew Help"),
		"",
		m.styles.Normal.Render("Mouse:"),
		m.styles.Help.Render("  click       - Log water"),
		m.styles.Help.Render("  drag        - Move Dew"),
		m.styles.Help.Render("  right click - Setup"),
		"",
		m.styles.Normal.Render("Keys:"),
		m.styles.Help.Render(fmt.Sprintf("  %-7s - Drink one sip", key("drink"))),
		m.styles.Help.Render(fmt.Sprintf("  %-7s - Toggle log", key("log"))),
		m.styles.Help.Render(fmt.Sprintf("  %-7s - Setup", key("setup"))),
		m.styles.Help.Render(fmt.Sprintf("  %-7s - Toggle help", key("help"))),
		m.styles.Help.Render(fmt.Sprintf("  %-7s - Quit", key("quit"))),
		"",
		m.styles.Help.Render("Press any key to return..."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf(" %s/%s | Streak: %d",
		formatMl(m.ledger.CurrentIntakeMl()),
		formatMl(m.ledger.DailyGoalMl()),
		m.ledger.StreakDays())

	right := "? for help | q to quit"

	if m.message != "" {
		right = m.styles.Message.Render(m.message)
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(left + middle + right)
}

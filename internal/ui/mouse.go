package ui

import (
	"github.com/cwarden/dew/internal/gesture"

	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse feeds pointer events through the gesture classifier. Left
// button gestures move the sprite or open the log, right click opens setup,
// and plain motion drives hover.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ViewSetup || m.mode == ViewHelp {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if !m.hit(msg.X, msg.Y) {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.classifier.OnPress(msg.X, msg.Y)
			m.grabX = msg.X - m.x
			m.grabY = msg.Y - m.y
		case tea.MouseButtonRight:
			m.openSetup()
		}

	case tea.MouseActionMotion:
		if _, _, pressed := m.classifier.Origin(); pressed {
			sig := m.classifier.OnMove(msg.X, msg.Y)
			switch sig.Kind {
			case gesture.SignalDragStart:
				m.behaviour.SetDragging(true)
				m.placeSprite(sig.X-m.grabX, sig.Y-m.grabY)
			case gesture.SignalDragDelta:
				m.placeSprite(sig.X-m.grabX, sig.Y-m.grabY)
			}
		}
		m.behaviour.SetHovering(m.hit(msg.X, msg.Y))

	case tea.MouseActionRelease:
		sig := m.classifier.OnRelease(msg.X, msg.Y)
		switch sig.Kind {
		case gesture.SignalDragEnd:
			m.behaviour.SetDragging(false)
		case gesture.SignalClick:
			m.toggleLog()
		}
		m.behaviour.SetHovering(m.hit(msg.X, msg.Y))
	}

	return m, nil
}

// hit reports whether a cell lies on the sprite.
func (m *Model) hit(x, y int) bool {
	return x >= m.x && x < m.x+m.spriteW && y >= m.y && y < m.y+m.spriteH
}

// placeSprite moves the sprite, keeping it on screen above the status bar.
func (m *Model) placeSprite(x, y int) {
	if m.width > 0 {
		x = min(x, m.width-m.spriteW)
	}
	if m.height > 0 {
		y = min(y, m.height-m.spriteH-1)
	}
	m.x = max(x, 0)
	m.y = max(y, 0)
}

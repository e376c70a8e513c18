package behaviour

import "github.com/cwarden/dew/internal/anim"

// State reduces the interaction flags to the visual state the sprite shows.
// A drag, or a reminder alert, wins over hover; hover wins over idle.
type State struct {
	dragging bool
	hovering bool
	alert    bool
}

func New() *State {
	return &State{}
}

func (s *State) SetDragging(dragging bool) {
	s.dragging = dragging
}

// SetHovering is recorded during a drag but has no effect until it ends.
func (s *State) SetHovering(hovering bool) {
	s.hovering = hovering
}

// SetAlert toggles the reminder override. Gesture events never clear it.
func (s *State) SetAlert(alert bool) {
	s.alert = alert
}

func (s *State) Dragging() bool { return s.dragging }
func (s *State) Hovering() bool { return s.hovering }
func (s *State) Alert() bool    { return s.alert }

func (s *State) Resolve() anim.VisualState {
	switch {
	case s.dragging, s.alert:
		return anim.StateAlertDrag
	case s.hovering:
		return anim.StateAlertHover
	default:
		return anim.StateIdle
	}
}

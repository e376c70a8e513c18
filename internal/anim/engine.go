package anim

import (
	"errors"
	"fmt"
	"time"
)

// ErrResourceMissing is returned when a visual state has no usable frames.
var ErrResourceMissing = errors.New("animation resource missing")

type VisualState int

const (
	StateIdle VisualState = iota
	StateAlertDrag
	StateAlertHover
)

func (s VisualState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAlertDrag:
		return "panic"
	case StateAlertHover:
		return "hover"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Tick intervals per state. Idle is the slowest, a drag the fastest.
const (
	DelayIdle  = 400 * time.Millisecond
	DelayDrag  = 100 * time.Millisecond
	DelayHover = 150 * time.Millisecond
)

// The drag track plays up to dragSettleHigh once, then alternates between
// dragSettleLow and dragSettleHigh for as long as the drag lasts.
const (
	dragSettleLow  = 3
	dragSettleHigh = 4
)

// Track is the ordered frame set for one visual state.
type Track[F any] struct {
	Frames []F
	Delay  time.Duration
}

// FrameSet holds one track per visual state.
type FrameSet[F any] struct {
	Idle  []F
	Drag  []F
	Hover []F
}

type Engine[F any] struct {
	tracks  map[VisualState]Track[F]
	current VisualState
	cursor  int
}

func NewEngine[F any](set FrameSet[F]) (*Engine[F], error) {
	tracks := map[VisualState]Track[F]{
		StateIdle:       {Frames: set.Idle, Delay: DelayIdle},
		StateAlertDrag:  {Frames: set.Drag, Delay: DelayDrag},
		StateAlertHover: {Frames: set.Hover, Delay: DelayHover},
	}

	for _, state := range []VisualState{StateIdle, StateAlertDrag, StateAlertHover} {
		if len(tracks[state].Frames) == 0 {
			return nil, fmt.Errorf("%w: no frames for %s", ErrResourceMissing, state)
		}
	}
	if n := len(set.Drag); n <= dragSettleHigh {
		return nil, fmt.Errorf("%w: panic track needs %d frames, got %d", ErrResourceMissing, dragSettleHigh+1, n)
	}

	// Frames are copied so the caller cannot mutate a loaded track.
	for state, track := range tracks {
		frames := make([]F, len(track.Frames))
		copy(frames, track.Frames)
		track.Frames = frames
		tracks[state] = track
	}

	return &Engine[F]{
		tracks:  tracks,
		current: StateIdle,
	}, nil
}

// Advance selects the frame to show for state and moves the cursor on. The
// returned delay is how long the caller should wait before the next call.
func (e *Engine[F]) Advance(state VisualState) (F, time.Duration) {
	track, ok := e.tracks[state]
	if !ok {
		state = StateIdle
		track = e.tracks[StateIdle]
	}

	if state != e.current {
		e.current = state
		e.cursor = 0
	}

	frame := track.Frames[e.cursor]

	switch state {
	case StateAlertDrag:
		e.cursor++
		if e.cursor > dragSettleHigh {
			e.cursor = dragSettleLow
		}
	default:
		e.cursor = (e.cursor + 1) % len(track.Frames)
	}

	return frame, track.Delay
}

// State reports the state used by the last Advance call.
func (e *Engine[F]) State() VisualState {
	return e.current
}

// Cursor reports the frame index the next Advance for the current state will show.
func (e *Engine[F]) Cursor() int {
	return e.cursor
}

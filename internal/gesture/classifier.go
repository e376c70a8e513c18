package gesture

// DefaultThreshold is the max-axis distance a press must travel before it
// counts as a drag.
const DefaultThreshold = 5

type SignalKind int

const (
	SignalNone SignalKind = iota
	SignalClick
	SignalDragStart
	SignalDragDelta
	SignalDragEnd
)

func (k SignalKind) String() string {
	switch k {
	case SignalClick:
		return "click"
	case SignalDragStart:
		return "drag-start"
	case SignalDragDelta:
		return "drag-delta"
	case SignalDragEnd:
		return "drag-end"
	default:
		return "none"
	}
}

// Signal is what a pointer event resolved to. X and Y carry the pointer
// position of the event that produced it.
type Signal struct {
	Kind SignalKind
	X, Y int
}

type Classifier struct {
	threshold int

	pressed   bool
	committed bool
	originX   int
	originY   int
}

func NewClassifier(threshold int) *Classifier {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return &Classifier{threshold: threshold}
}

func (c *Classifier) OnPress(x, y int) {
	c.pressed = true
	c.committed = false
	c.originX = x
	c.originY = y
}

func (c *Classifier) OnMove(x, y int) Signal {
	if !c.pressed {
		return Signal{}
	}

	if c.committed {
		return Signal{Kind: SignalDragDelta, X: x, Y: y}
	}

	if chebyshev(c.originX, c.originY, x, y) > c.threshold {
		c.committed = true
		return Signal{Kind: SignalDragStart, X: x, Y: y}
	}

	return Signal{}
}

func (c *Classifier) OnRelease(x, y int) Signal {
	if !c.pressed {
		return Signal{}
	}

	kind := SignalClick
	if c.committed {
		kind = SignalDragEnd
	}

	c.reset()
	return Signal{Kind: kind, X: x, Y: y}
}

// Origin returns where the current gesture started. ok is false between gestures.
func (c *Classifier) Origin() (x, y int, ok bool) {
	return c.originX, c.originY, c.pressed
}

func (c *Classifier) Dragging() bool {
	return c.committed
}

// Cancel abandons the gesture in progress without emitting a signal. A later
// release is then ignored.
func (c *Classifier) Cancel() {
	c.reset()
}

func (c *Classifier) reset() {
	c.pressed = false
	c.committed = false
	c.originX = 0
	c.originY = 0
}

func chebyshev(x1, y1, x2, y2 int) int {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

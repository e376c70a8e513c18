package reminder

import (
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultInterval = 30 * time.Minute
	DefaultDuration = 10 * time.Second
	DefaultRecheck  = time.Second
)

type EventKind int

const (
	EventFire EventKind = iota
	EventClose
)

// Event is delivered back to the scheduler when a requested timer elapses.
// Close events carry the cycle they belong to.
type Event struct {
	Kind  EventKind
	Cycle string
}

// Timer arranges for an Event to be handed back after a delay. The scheduler
// never waits itself; the host decides how the delay is realised.
type Timer interface {
	Schedule(after time.Duration, ev Event)
}

// IntakeSource is the part of the hydration ledger the scheduler reads.
type IntakeSource interface {
	LastIntakeTimestamp() (time.Time, bool)
}

// Alerter receives the alert override while a reminder is visible.
type Alerter interface {
	SetAlert(bool)
}

type Scheduler struct {
	timer   Timer
	intake  IntakeSource
	alerter Alerter
	now     func() time.Time

	interval time.Duration
	duration time.Duration
	recheck  time.Duration

	visible bool
	cycle   string
	stopped bool
}

func NewScheduler(timer Timer, intake IntakeSource, alerter Alerter, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		timer:    timer,
		intake:   intake,
		alerter:  alerter,
		now:      now,
		interval: DefaultInterval,
		duration: DefaultDuration,
		recheck:  DefaultRecheck,
	}
}

// SetTiming changes the cycle timing. It takes effect at the next Arm.
// Non-positive values leave the current setting alone.
func (s *Scheduler) SetTiming(interval, duration, recheck time.Duration) {
	if interval > 0 {
		s.interval = interval
	}
	if duration > 0 {
		s.duration = duration
	}
	if recheck > 0 {
		s.recheck = recheck
	}
}

func (s *Scheduler) Interval() time.Duration { return s.interval }
func (s *Scheduler) Duration() time.Duration { return s.duration }

func (s *Scheduler) Visible() bool {
	return s.visible
}

// Arm schedules the next reminder one full interval from now.
func (s *Scheduler) Arm() {
	if s.stopped {
		return
	}
	s.timer.Schedule(s.interval, Event{Kind: EventFire})
}

// Fire shows a reminder unless one is already visible or water was logged
// within the last interval, in which case it polls again shortly. A ledger
// with no intake timestamp counts as overdue.
func (s *Scheduler) Fire() {
	if s.stopped || s.visible {
		return
	}

	// With no intake ever logged the reminder is overdue.
	if last, ok := s.intake.LastIntakeTimestamp(); ok && s.now().Sub(last) < s.interval {
		s.timer.Schedule(s.recheck, Event{Kind: EventFire})
		return
	}

	s.visible = true
	s.cycle = uuid.NewString()
	s.alerter.SetAlert(true)
	log.Printf("Showing hydration reminder %s", s.cycle)

	s.timer.Schedule(s.duration, Event{Kind: EventClose, Cycle: s.cycle})
	s.Arm()
}

// Close hides the reminder shown in cycle. Closes for any other cycle are
// ignored.
func (s *Scheduler) Close(cycle string) {
	if s.stopped || !s.visible || cycle != s.cycle {
		return
	}
	s.visible = false
	s.alerter.SetAlert(false)
	log.Printf("Closed hydration reminder %s", cycle)
}

// Dismiss hides the current reminder early, e.g. after water is logged.
func (s *Scheduler) Dismiss() {
	s.Close(s.cycle)
}

// Handle dispatches a timer event.
func (s *Scheduler) Handle(ev Event) {
	switch ev.Kind {
	case EventFire:
		s.Fire()
	case EventClose:
		s.Close(ev.Cycle)
	}
}

// Stop marks the scheduler torn down. Timers that are still in flight become
// no-ops when they arrive.
func (s *Scheduler) Stop() {
	s.stopped = true
	if s.visible {
		s.visible = false
		s.alerter.SetAlert(false)
	}
}

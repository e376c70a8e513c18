package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/cwarden/dew/internal/anim"
	"github.com/cwarden/dew/internal/behaviour"
	"github.com/cwarden/dew/internal/config"
	"github.com/cwarden/dew/internal/gesture"
	"github.com/cwarden/dew/internal/hydration"
	"github.com/cwarden/dew/internal/parser"
	"github.com/cwarden/dew/internal/reminder"
	"github.com/cwarden/dew/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robfig/cron/v3"
)

type ViewMode int

const (
	ViewPet ViewMode = iota
	ViewLog
	ViewSetup
	ViewHelp
)

const (
	firstFrameDelay = time.Millisecond
	messageTimeout  = 3 * time.Second
	rolloverPoll    = time.Minute
)

type Model struct {
	// Core components
	config     *config.Config
	ledger     *hydration.Ledger
	engine     *anim.Engine[string]
	classifier *gesture.Classifier
	behaviour  *behaviour.State
	scheduler  *reminder.Scheduler
	timer      *teaTimer
	rollover   cron.Schedule
	watcher    *watch.FileWatcher
	volume     *parser.VolumeParser
	now        func() time.Time

	// Sprite state
	mode    ViewMode
	frame   string
	x, y    int
	grabX   int
	grabY   int
	spriteW int
	spriteH int

	// UI state
	width      int
	height     int
	message    string
	messageSeq int
	closed     bool

	// Setup editor state
	goalInput  string
	sipInput   string
	setupField int

	// Styles
	styles Styles
}

// NewModel wires the core components together. It fails with
// anim.ErrResourceMissing when frames lacks a usable track.
func NewModel(cfg *config.Config, ledger *hydration.Ledger, frames anim.FrameSet[string], now func() time.Time) (*Model, error) {
	if now == nil {
		now = time.Now
	}

	engine, err := anim.NewEngine(frames)
	if err != nil {
		return nil, err
	}

	rollover, err := cfg.Rollover()
	if err != nil {
		return nil, err
	}

	m := &Model{
		config:     cfg,
		ledger:     ledger,
		engine:     engine,
		classifier: gesture.NewClassifier(cfg.DragThreshold),
		behaviour:  behaviour.New(),
		timer:      &teaTimer{},
		rollover:   rollover,
		volume:     parser.NewVolumeParser(),
		now:        now,
		mode:       ViewPet,
		x:          cfg.StartX,
		y:          cfg.StartY,
		styles:     DefaultStyles(cfg.Colors),
	}
	m.spriteW, m.spriteH = frameBounds(frames)
	m.frame = frames.Idle[0]

	m.scheduler = reminder.NewScheduler(m.timer, ledger, m.behaviour, now)
	m.scheduler.SetTiming(cfg.ReminderInterval, cfg.ReminderDuration, cfg.ReminderRecheck)

	ledger.RolloverIfNewDay(now())
	if ledger.FirstRun() {
		m.openSetup()
	}

	if cfg.Path != "" {
		watcher, err := watch.NewFileWatcher(watch.DefaultDebounce)
		if err != nil {
			log.Printf("Config hot reload disabled: %v", err)
		} else if err := watcher.AddFile(cfg.Path); err != nil {
			log.Printf("Config hot reload disabled: %v", err)
			watcher.Close()
		} else {
			m.watcher = watcher
		}
	}

	return m, nil
}

func frameBounds(frames anim.FrameSet[string]) (int, int) {
	w, h := 0, 0
	for _, track := range [][]string{frames.Idle, frames.Drag, frames.Hover} {
		for _, f := range track {
			w = max(w, lipgloss.Width(f))
			h = max(h, lipgloss.Height(f))
		}
	}
	return w, h
}

func (m *Model) Init() tea.Cmd {
	m.scheduler.Arm()

	return tea.Batch(
		m.animTickCmd(firstFrameDelay),
		m.timer.Flush(),
		m.rolloverCmd(),
		m.watchCmd(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.placeSprite(m.x, m.y)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case animTickMsg:
		state := m.behaviour.Resolve()
		frame, delay := m.engine.Advance(state)
		m.frame = frame
		return m, m.animTickCmd(delay)

	case reminderMsg:
		m.scheduler.Handle(msg.event)
		return m, m.timer.Flush()

	case rolloverMsg:
		if m.ledger.RolloverIfNewDay(m.now()) {
			cmd := m.showMessage(fmt.Sprintf("New day! Streak: %d", m.ledger.StreakDays()))
			return m, tea.Batch(cmd, m.rolloverCmd())
		}
		return m, m.rolloverCmd()

	case configChangedMsg:
		return m, tea.Batch(m.reloadConfig(msg.path), m.watchCmd())

	case messageTimeoutMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.mode {
	case ViewSetup:
		return m.handleSetupKeys(msg)
	case ViewHelp:
		m.mode = ViewPet
		return m, nil
	case ViewLog:
		switch msg.Type {
		case tea.KeyEnter:
			return m, m.drink()
		case tea.KeyEscape:
			m.mode = ViewPet
			return m, nil
		}
	}

	switch m.config.KeyBindings[msg.String()] {
	case "quit":
		return m.quit()
	case "help":
		m.cancelGesture()
		m.mode = ViewHelp
	case "drink":
		return m, m.drink()
	case "log":
		m.toggleLog()
	case "setup":
		m.openSetup()
	}

	return m, nil
}

func (m *Model) handleSetupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	input := &m.goalInput
	if m.setupField == 1 {
		input = &m.sipInput
	}

	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ViewPet
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.setupField = 1 - m.setupField

	case tea.KeyEnter:
		return m, m.savePreferences()

	case tea.KeyBackspace:
		if len(*input) > 0 {
			*input = (*input)[:len(*input)-1]
		}

	case tea.KeyRunes, tea.KeySpace:
		*input += string(msg.Runes)
	}

	return m, nil
}

func (m *Model) openSetup() {
	m.cancelGesture()
	m.mode = ViewSetup
	m.setupField = 0
	m.goalInput = fmt.Sprintf("%d", m.ledger.DailyGoalMl())
	m.sipInput = fmt.Sprintf("%d", m.ledger.SipAmountMl())
}

// cancelGesture drops any press or drag in progress. Setup and help swallow
// mouse events, so the matching release would never arrive.
func (m *Model) cancelGesture() {
	m.classifier.Cancel()
	m.behaviour.SetDragging(false)
	m.behaviour.SetHovering(false)
}

func (m *Model) toggleLog() {
	if m.mode == ViewLog {
		m.mode = ViewPet
	} else {
		m.mode = ViewLog
	}
}

func (m *Model) savePreferences() tea.Cmd {
	goal, err := m.volume.Parse(m.goalInput)
	if err != nil {
		return m.showMessage("Please enter valid numbers.")
	}
	sip, err := m.volume.Parse(m.sipInput)
	if err != nil {
		return m.showMessage("Please enter valid numbers.")
	}

	if err := m.ledger.SetPreferences(goal, sip); err != nil {
		return m.showMessage(fmt.Sprintf("Error: %v", err))
	}

	m.mode = ViewPet
	return m.showMessage("Preferences updated.")
}

// drink logs one sip. A visible reminder is dismissed since it has been
// answered.
func (m *Model) drink() tea.Cmd {
	wasMet := m.ledger.GoalMet()
	m.ledger.Sip()
	m.scheduler.Dismiss()
	m.mode = ViewPet

	if !wasMet && m.ledger.GoalMet() {
		return m.showMessage("Congrats! You've met today's hydration goal!")
	}
	return m.showMessage(fmt.Sprintf("Logged %d ml (%d/%d ml)",
		m.ledger.SipAmountMl(), m.ledger.CurrentIntakeMl(), m.ledger.DailyGoalMl()))
}

func (m *Model) reloadConfig(path string) tea.Cmd {
	cfg, err := config.LoadFile(path)
	if err != nil {
		log.Printf("Keeping previous config: %v", err)
		return m.showMessage(fmt.Sprintf("Config error: %v", err))
	}

	rollover, err := cfg.Rollover()
	if err != nil {
		return m.showMessage(fmt.Sprintf("Config error: %v", err))
	}

	// Snapshot, frames and start position only apply at startup.
	cfg.SnapshotFile = m.config.SnapshotFile
	cfg.FrameDir = m.config.FrameDir
	cfg.LogFile = m.config.LogFile

	m.config = cfg
	m.rollover = rollover
	m.scheduler.SetTiming(cfg.ReminderInterval, cfg.ReminderDuration, cfg.ReminderRecheck)
	m.styles = DefaultStyles(cfg.Colors)

	log.Printf("Reloaded config from %s", path)
	return m.showMessage("Config reloaded")
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.closed = true
	m.scheduler.Stop()
	if m.watcher != nil {
		m.watcher.Close()
	}
	return m, tea.Quit
}

func (m *Model) showMessage(msg string) tea.Cmd {
	m.message = msg
	m.messageSeq++
	seq := m.messageSeq
	return tea.Tick(messageTimeout, func(time.Time) tea.Msg {
		return messageTimeoutMsg{seq: seq}
	})
}

func (m *Model) animTickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return animTickMsg{}
	})
}

// rolloverCmd wakes at the next scheduled rollover, but never sleeps longer
// than rolloverPoll. Timers do not advance while the machine is suspended, so
// a long wait could miss midnight by hours.
func (m *Model) rolloverCmd() tea.Cmd {
	return tea.Tick(m.rolloverDelay(), func(time.Time) tea.Msg {
		return rolloverMsg{}
	})
}

func (m *Model) rolloverDelay() time.Duration {
	now := m.now()
	next := m.rollover.Next(now)
	if next.IsZero() {
		return rolloverPoll
	}
	return min(next.Sub(now), rolloverPoll)
}

func (m *Model) watchCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		ev, ok := <-changes
		if !ok {
			return nil
		}
		return configChangedMsg{path: ev.Path}
	}
}

// Message types
type animTickMsg struct{}
type rolloverMsg struct{}
type reminderMsg struct {
	event reminder.Event
}
type configChangedMsg struct {
	path string
}
type messageTimeoutMsg struct {
	seq int
}

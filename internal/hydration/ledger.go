package hydration

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"
)

// ErrInvalidPreference is returned when a goal or sip edit is rejected. The
// previous value is kept.
var ErrInvalidPreference = errors.New("invalid preference")

// Ledger owns the hydration record. Every mutation is written through to the
// snapshot; write failures are logged and the in-memory record stays
// authoritative.
type Ledger struct {
	store    Snapshotter
	now      func() time.Time
	rec      Record
	firstRun bool
}

// Open loads the ledger from store. It never fails: an unreadable snapshot is
// replaced by defaults and rewritten.
func Open(store Snapshotter, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}

	l := &Ledger{store: store, now: now}

	rec, err := store.Load()
	switch {
	case err == nil:
		l.rec = rec
		if l.rec.repair() {
			log.Printf("Repaired out-of-range hydration fields")
			l.save()
		}
	case errors.Is(err, os.ErrNotExist):
		l.rec = DefaultRecord()
		l.save()
	default:
		log.Printf("Resetting hydration snapshot: %v", err)
		l.rec = DefaultRecord()
		l.save()
	}

	l.firstRun = l.rec.LastResetDate == nil
	return l
}

func (l *Ledger) save() {
	if err := l.store.Save(l.rec); err != nil {
		log.Printf("Error saving hydration snapshot: %v", err)
	}
}

// Record returns a copy of the current record.
func (l *Ledger) Record() Record {
	rec := l.rec
	if rec.LastResetDate != nil {
		d := *rec.LastResetDate
		rec.LastResetDate = &d
	}
	if rec.LastIntakeTime != nil {
		ts := *rec.LastIntakeTime
		rec.LastIntakeTime = &ts
	}
	return rec
}

// FirstRun reports whether the snapshot had never been through a rollover
// when the ledger was opened.
func (l *Ledger) FirstRun() bool {
	return l.firstRun
}

func (l *Ledger) DailyGoalMl() int     { return l.rec.DailyGoalMl }
func (l *Ledger) SipAmountMl() int     { return l.rec.SipAmountMl }
func (l *Ledger) CurrentIntakeMl() int { return l.rec.CurrentIntakeMl }
func (l *Ledger) StreakDays() int      { return l.rec.StreakDays }

func (l *Ledger) GoalMet() bool {
	return l.rec.CurrentIntakeMl >= l.rec.DailyGoalMl
}

// LastIntakeTimestamp returns when intake was last logged; ok is false if
// nothing has been logged yet.
func (l *Ledger) LastIntakeTimestamp() (t time.Time, ok bool) {
	if l.rec.LastIntakeTime == nil {
		return time.Time{}, false
	}
	return fromUnixSeconds(*l.rec.LastIntakeTime), true
}

// AddIntake logs amountMl of water. The daily total stays within
// [0, 2*goal].
func (l *Ledger) AddIntake(amountMl int) {
	l.rec.CurrentIntakeMl = addClamped(l.rec.CurrentIntakeMl, amountMl, l.rec.DailyGoalMl)
	ts := unixSeconds(l.now())
	l.rec.LastIntakeTime = &ts
	l.save()
}

// Sip logs one sip of the configured size.
func (l *Ledger) Sip() {
	l.AddIntake(l.rec.SipAmountMl)
}

// RolloverIfNewDay closes out the previous day when today is a different
// calendar date than the last reset. The streak grows if the goal was met and
// is broken otherwise. The first ever call only stamps the date. It reports
// whether the record changed.
func (l *Ledger) RolloverIfNewDay(today time.Time) bool {
	key := dateKey(today)

	if l.rec.LastResetDate == nil {
		l.rec.LastResetDate = &key
		l.save()
		return true
	}

	if *l.rec.LastResetDate == key {
		return false
	}

	if l.rec.CurrentIntakeMl >= l.rec.DailyGoalMl {
		l.rec.StreakDays++
	} else {
		l.rec.StreakDays = 0
	}
	l.rec.CurrentIntakeMl = 0
	l.rec.LastResetDate = &key
	l.save()

	log.Printf("Rolled over to %s, streak %d", key, l.rec.StreakDays)
	return true
}

func ValidateDailyGoal(ml int) error {
	if ml <= 0 || ml > MaxDailyGoalMl {
		return fmt.Errorf("%w: daily goal must be between 1 and %d ml, got %d", ErrInvalidPreference, MaxDailyGoalMl, ml)
	}
	return nil
}

func ValidateSipAmount(ml int) error {
	if ml <= 0 || ml > MaxSipAmountMl {
		return fmt.Errorf("%w: sip amount must be between 1 and %d ml, got %d", ErrInvalidPreference, MaxSipAmountMl, ml)
	}
	return nil
}

func (l *Ledger) SetDailyGoalMl(ml int) error {
	return l.SetPreferences(ml, l.rec.SipAmountMl)
}

func (l *Ledger) SetSipAmountMl(ml int) error {
	return l.SetPreferences(l.rec.DailyGoalMl, ml)
}

// SetPreferences validates both values before applying either.
func (l *Ledger) SetPreferences(goalMl, sipMl int) error {
	if err := ValidateDailyGoal(goalMl); err != nil {
		return err
	}
	if err := ValidateSipAmount(sipMl); err != nil {
		return err
	}

	l.rec.DailyGoalMl = goalMl
	l.rec.SipAmountMl = sipMl
	l.rec.CurrentIntakeMl = clampIntake(l.rec.CurrentIntakeMl, goalMl)
	l.save()
	return nil
}

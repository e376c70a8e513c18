package hydration

import (
	"math"
	"time"
)

const (
	DefaultDailyGoalMl = 2000
	DefaultSipAmountMl = 250

	MaxDailyGoalMl = 20000
	MaxSipAmountMl = 5000
)

const dateLayout = "2006-01-02"

// Record is the persisted hydration snapshot. Field names match the flat
// key-value file written by earlier releases.
type Record struct {
	DailyGoalMl     int      `json:"dailyGoal"`
	SipAmountMl     int      `json:"sipAmount"`
	CurrentIntakeMl int      `json:"currentIntake"`
	LastResetDate   *string  `json:"lastResetDate"`
	StreakDays      int      `json:"streak"`
	LastIntakeTime  *float64 `json:"lastIntakeTime"`
}

func DefaultRecord() Record {
	return Record{
		DailyGoalMl: DefaultDailyGoalMl,
		SipAmountMl: DefaultSipAmountMl,
	}
}

// repair replaces out-of-range fields with their defaults and re-applies the
// intake clamp. It reports whether anything changed.
func (r *Record) repair() bool {
	changed := false

	if r.DailyGoalMl <= 0 {
		r.DailyGoalMl = DefaultDailyGoalMl
		changed = true
	}
	if r.SipAmountMl <= 0 {
		r.SipAmountMl = DefaultSipAmountMl
		changed = true
	}
	if r.StreakDays < 0 {
		r.StreakDays = 0
		changed = true
	}
	if r.LastResetDate != nil {
		if _, err := time.Parse(dateLayout, *r.LastResetDate); err != nil {
			r.LastResetDate = nil
			changed = true
		}
	}
	if r.LastIntakeTime != nil && (math.IsNaN(*r.LastIntakeTime) || math.IsInf(*r.LastIntakeTime, 0)) {
		r.LastIntakeTime = nil
		changed = true
	}
	if clamped := clampIntake(r.CurrentIntakeMl, r.DailyGoalMl); clamped != r.CurrentIntakeMl {
		r.CurrentIntakeMl = clamped
		changed = true
	}

	return changed
}

func clampIntake(intake, goal int) int {
	if intake < 0 {
		return 0
	}
	if limit := 2 * goal; intake > limit {
		return limit
	}
	return intake
}

// addClamped adds amount to intake without overflowing, keeping the result
// within [0, 2*goal].
func addClamped(intake, amount, goal int) int {
	intake = clampIntake(intake, goal)
	switch limit := 2 * goal; {
	case amount > limit-intake:
		return limit
	case amount < -intake:
		return 0
	}
	return intake + amount
}

func dateKey(t time.Time) string {
	return t.Format(dateLayout)
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromUnixSeconds(s float64) time.Time {
	sec, frac := math.Modf(s)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}

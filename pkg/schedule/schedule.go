// Package schedule implements the productivity heuristics engine: task
// priority scoring, free-slot discovery, auto-scheduling, recurrence
// expansion, dependency analysis and daily agendas. Every function is a
// pure computation over snapshots passed in by the hosting app; the
// learned behavior profile is an explicit value threaded through calls,
// not hidden state.
package schedule

import "time"

// Working window and slot sizing.
const (
	workStartHour  = 9
	workEndHour    = 17
	minSlotMinutes = 30

	// defaultDuration is assumed when a task carries no estimate.
	defaultDuration = 60

	// searchHorizonDays bounds the optimal-slot scan.
	searchHorizonDays = 7

	// maxRecurringInstances is the hard safety cap on recurrence
	// expansion, independent of the requested date range.
	maxRecurringInstances = 365
)

// HourMinute is a time-of-day preference entry.
type HourMinute struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Preferences enumerates the recognized scheduling options.
type Preferences struct {
	// PreferredTimes are times of day the user likes to work; candidate
	// slots score higher the closer they start to one.
	PreferredTimes []HourMinute `json:"preferredTimes,omitempty"`
	// WorkStart and WorkEnd bound the daily scan window.
	WorkStart HourMinute `json:"workStart"`
	WorkEnd   HourMinute `json:"workEnd"`
	// SkipWeekends excludes Saturday and Sunday from the scan.
	SkipWeekends bool `json:"skipWeekends"`
}

// DefaultPreferences returns the standard 09:00-17:00 weekday window.
func DefaultPreferences() Preferences {
	return Preferences{
		WorkStart:    HourMinute{Hour: workStartHour},
		WorkEnd:      HourMinute{Hour: workEndHour},
		SkipWeekends: true,
	}
}

// TimeSlot is a contiguous free interval on a given day.
type TimeSlot struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration"` // minutes
}

// ScoredSlot is a candidate scheduling slot with its ranking score and a
// human-readable reason.
type ScoredSlot struct {
	TimeSlot
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// energyByHour is the default energy-level pattern keyed by hour of day.
// Values roughly follow a morning peak, a post-lunch dip and an afternoon
// recovery.
var energyByHour = [24]float64{
	15, 15, 15, 15, 15, 18, 25, 40, // 00-07
	60, 85, 90, 85, 60, 50, 65, 70, // 08-15
	60, 50, 45, 40, 35, 30, 25, 20, // 16-23
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// overlaps reports half-open interval overlap:
// [aStart,aEnd) intersects [bStart,bEnd).
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func taskDuration(estimated int) int {
	if estimated <= 0 {
		return defaultDuration
	}
	return estimated
}

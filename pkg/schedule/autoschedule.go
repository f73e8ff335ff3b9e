package schedule

import (
	"sort"
	"time"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

// AutoSchedule assigns slots to incomplete, unscheduled tasks in priority
// order. Each placed task adds a synthetic busy interval so later tasks
// cannot take the same slot; the caller's event slice is never mutated.
// Tasks with no viable slot inside the search horizon are omitted from
// the result.
func AutoSchedule(tasks []store.Task, events []store.CalendarEvent, prefs Preferences, profile store.BehaviorProfile, recent []store.Task) []store.Task {
	return autoScheduleAt(time.Now(), tasks, events, prefs, profile, recent)
}

func autoScheduleAt(now time.Time, tasks []store.Task, events []store.CalendarEvent, prefs Preferences, profile store.BehaviorProfile, recent []store.Task) []store.Task {
	type ranked struct {
		task     store.Task
		priority int
	}

	var pending []ranked
	for _, t := range tasks {
		if t.Completed || t.ScheduledTime != nil {
			continue
		}
		// Priorities are computed against the original snapshots, not
		// the accumulating busy set.
		pending = append(pending, ranked{
			task:     t,
			priority: taskPriorityAt(now, t, tasks, events, profile, recent),
		})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].priority > pending[j].priority
	})

	// Busy accumulator: original events plus synthetic entries for each
	// task placed so far.
	busy := make([]store.CalendarEvent, len(events))
	copy(busy, events)

	var scheduled []store.Task
	for _, p := range pending {
		slots := optimalSlotsAt(now, p.task, busy, prefs)
		if len(slots) == 0 {
			continue // infeasible, silently omitted
		}
		best := slots[0]

		t := p.task
		start, end := best.Start, best.End
		t.ScheduledTime = &start
		t.ScheduledEndTime = &end
		t.AutoScheduled = true
		t.SchedulingReason = best.Reason
		t.SchedulingScore = best.Score
		scheduled = append(scheduled, t)

		busy = append(busy, store.CalendarEvent{
			ID:     "scheduled_" + t.ID,
			Title:  t.Title,
			Start:  best.Start,
			End:    best.End,
			TaskID: t.ID,
		})
	}
	return scheduled
}

package schedule

import (
	"time"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

// ExpandRecurring materializes instances of a recurring task between
// startDate and endDate inclusive. Instance ids are derived from the
// parent id and the occurrence date. Expansion stops after 365 instances
// regardless of the requested range, so a malformed pattern can never
// produce an unbounded loop.
func ExpandRecurring(task store.Task, startDate, endDate time.Time) []store.Task {
	if task.Recurrence == nil {
		return nil
	}

	interval := task.Recurrence.Interval
	if interval < 1 {
		interval = 1
	}

	var instances []store.Task
	current := startDate

	for !current.After(endDate) && len(instances) < maxRecurringInstances {
		due := current
		instance := task
		instance.ID = task.ID + "_" + current.Format("2006-01-02")
		instance.ParentTaskID = task.ID
		instance.DueDate = &due
		instance.IsRecurringInstance = true
		instance.Recurrence = nil
		instance.Completed = false
		instance.ScheduledTime = nil
		instance.ScheduledEndTime = nil
		instances = append(instances, instance)

		switch task.Recurrence.Type {
		case "weekly":
			current = current.AddDate(0, 0, 7*interval)
		case "monthly":
			current = current.AddDate(0, interval, 0)
		case "yearly":
			current = current.AddDate(interval, 0, 0)
		default: // daily, and the fallback for unrecognized types
			current = current.AddDate(0, 0, interval)
		}
	}
	return instances
}

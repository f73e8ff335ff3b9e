package schedule

import (
	"math"
	"time"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

// TaskPriority computes an additive urgency score for a task. Scores are
// relative, not normalized; no upper bound is enforced.
func TaskPriority(task store.Task, all []store.Task, events []store.CalendarEvent, profile store.BehaviorProfile, recent []store.Task) int {
	return taskPriorityAt(time.Now(), task, all, events, profile, recent)
}

func taskPriorityAt(now time.Time, task store.Task, all []store.Task, events []store.CalendarEvent, profile store.BehaviorProfile, recent []store.Task) int {
	score := basePriority(task.Priority)
	score += deadlineUrgency(now, task.DueDate)

	// A free slot today that fits the task makes it actionable now.
	needed := taskDuration(task.EstimatedDuration)
	for _, slot := range AvailableSlots(events, now) {
		if slot.Duration >= needed {
			score += 30
			break
		}
	}

	// Tasks that unblock others climb the list.
	dependents := 0
	for _, other := range all {
		if other.ID == task.ID {
			continue
		}
		for _, dep := range other.Dependencies {
			if dep == task.ID {
				dependents++
				break
			}
		}
	}
	score += float64(20 * dependents)

	score += behaviorScore(now, task, profile)

	// Context-switch avoidance: staying in the same category or tag as
	// recently-worked tasks is cheaper than switching.
	if sharesContext(task, recent) {
		score += 15
	}

	return int(math.Round(score))
}

func basePriority(priority string) float64 {
	switch priority {
	case store.PriorityUrgent:
		return 100
	case store.PriorityHigh:
		return 75
	case store.PriorityMedium:
		return 50
	case store.PriorityLow:
		return 25
	default:
		return 25
	}
}

// deadlineUrgency maps days-until-due to a pressure bonus.
func deadlineUrgency(now time.Time, due *time.Time) float64 {
	if due == nil {
		return 0
	}
	days := due.Sub(now).Hours() / 24
	switch {
	case days < 0:
		return 200 // overdue
	case days < 1:
		return 150
	case days < 3:
		return 100
	case days < 7:
		return 50
	default:
		return 0
	}
}

// behaviorScore rewards tasks whose category the user historically
// completes around the current hour. Zero with no recorded history.
func behaviorScore(now time.Time, task store.Task, profile store.BehaviorProfile) float64 {
	hours := profile.CategoryHours[task.Category]
	if len(hours) == 0 {
		return 0
	}

	peakHour, peakCount := 0, 0
	for h, c := range hours {
		if c > peakCount || (c == peakCount && h < peakHour) {
			peakHour, peakCount = h, c
		}
	}

	diff := now.Hour() - peakHour
	if diff < 0 {
		diff = -diff
	}
	if diff <= 1 {
		return 25
	}
	return 10
}

func sharesContext(task store.Task, recent []store.Task) bool {
	for _, r := range recent {
		if task.Category != "" && r.Category == task.Category {
			return true
		}
		for _, tag := range task.Tags {
			for _, rt := range r.Tags {
				if tag == rt {
					return true
				}
			}
		}
	}
	return false
}

package schedule

import (
	"time"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

// RecordCompletion folds a finished task into the behavior profile and
// returns the updated value; the caller persists it. Duration per
// priority is an overwrite of the last observation, not a rolling
// average.
func RecordCompletion(profile store.BehaviorProfile, task store.Task, completedAt time.Time, actualDuration int) store.BehaviorProfile {
	hour := completedAt.Hour()

	category := task.Category
	if category == "" {
		category = "general"
	}
	if profile.CategoryHours == nil {
		profile.CategoryHours = make(map[string]map[int]int)
	}
	if profile.CategoryHours[category] == nil {
		profile.CategoryHours[category] = make(map[int]int)
	}
	profile.CategoryHours[category][hour]++

	priority := task.Priority
	if priority == "" {
		priority = store.PriorityMedium
	}
	if profile.DurationByPriority == nil {
		profile.DurationByPriority = make(map[string]int)
	}
	profile.DurationByPriority[priority] = actualDuration

	if profile.DaySuccess == nil {
		profile.DaySuccess = make(map[string]int)
	}
	profile.DaySuccess[completedAt.Weekday().String()]++

	if profile.ProductivityHours == nil {
		profile.ProductivityHours = make(map[int]int)
	}
	profile.ProductivityHours[hour]++

	return profile
}

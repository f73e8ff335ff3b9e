package schedule

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

// AvailableSlots scans a day's calendar events for free gaps inside the
// fixed 09:00-17:00 working window. Gaps shorter than 30 minutes are not
// usable and are dropped.
func AvailableSlots(events []store.CalendarEvent, date time.Time) []TimeSlot {
	y, m, d := date.Date()
	windowStart := time.Date(y, m, d, workStartHour, 0, 0, 0, date.Location())
	windowEnd := time.Date(y, m, d, workEndHour, 0, 0, 0, date.Location())

	var dayEvents []store.CalendarEvent
	for _, e := range events {
		if sameDay(e.Start, date) {
			dayEvents = append(dayEvents, e)
		}
	}
	sort.SliceStable(dayEvents, func(i, j int) bool {
		return dayEvents[i].Start.Before(dayEvents[j].Start)
	})

	var slots []TimeSlot
	cursor := windowStart

	for _, e := range dayEvents {
		gapEnd := e.Start
		if gapEnd.After(windowEnd) {
			gapEnd = windowEnd
		}
		if gap := gapEnd.Sub(cursor); gap >= minSlotMinutes*time.Minute {
			slots = append(slots, TimeSlot{
				Start:    cursor,
				End:      gapEnd,
				Duration: int(gap.Minutes()),
			})
		}
		if e.End.After(cursor) {
			cursor = e.End
		}
	}

	if gap := windowEnd.Sub(cursor); gap >= minSlotMinutes*time.Minute {
		slots = append(slots, TimeSlot{
			Start:    cursor,
			End:      windowEnd,
			Duration: int(gap.Minutes()),
		})
	}
	return slots
}

// OptimalSlots ranks candidate hours for working on a task over the next
// seven days and returns the top five, best first.
func OptimalSlots(task store.Task, events []store.CalendarEvent, prefs Preferences) []ScoredSlot {
	return optimalSlotsAt(time.Now(), task, events, prefs)
}

func optimalSlotsAt(now time.Time, task store.Task, events []store.CalendarEvent, prefs Preferences) []ScoredSlot {
	duration := time.Duration(taskDuration(task.EstimatedDuration)) * time.Minute

	startHour := prefs.WorkStart.Hour
	endHour := prefs.WorkEnd.Hour
	if endHour <= startHour {
		startHour, endHour = workStartHour, workEndHour
	}

	var candidates []ScoredSlot

	for day := 0; day <= searchHorizonDays; day++ {
		date := now.AddDate(0, 0, day)
		if prefs.SkipWeekends && isWeekend(date) {
			continue
		}
		y, m, d := date.Date()

		for hour := startHour; hour < endHour; hour++ {
			slotStart := time.Date(y, m, d, hour, 0, 0, 0, now.Location())
			if !slotStart.After(now) {
				continue
			}
			slotEnd := slotStart.Add(duration)

			conflict := false
			for _, e := range events {
				if overlaps(slotStart, slotEnd, e.Start, e.End) {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}

			score, reason := scoreSlot(task, slotStart, prefs)
			candidates = append(candidates, ScoredSlot{
				TimeSlot: TimeSlot{
					Start:    slotStart,
					End:      slotEnd,
					Duration: int(duration.Minutes()),
				},
				Score:  score,
				Reason: reason,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > 5 {
		candidates = candidates[:5]
	}
	return candidates
}

// scoreSlot rates a candidate start time for a task.
func scoreSlot(task store.Task, slotStart time.Time, prefs Preferences) (float64, string) {
	score := 50.0
	var reasons []string

	// Closeness to a preferred time, 20 - 2 per hour of distance.
	if len(prefs.PreferredTimes) > 0 {
		slotMinutes := float64(slotStart.Hour()*60 + slotStart.Minute())
		best := math.MaxFloat64
		for _, p := range prefs.PreferredTimes {
			dist := math.Abs(slotMinutes-float64(p.Hour*60+p.Minute)) / 60
			if dist < best {
				best = dist
			}
		}
		if bonus := 20 - 2*best; bonus > 0 {
			score += bonus
			if best < 1 {
				reasons = append(reasons, "Matches preferred time")
			}
		}
	}

	// Energy level at that hour.
	score += 0.3 * energyByHour[slotStart.Hour()]

	// Category / time-of-day fit.
	hour := slotStart.Hour()
	switch strings.ToLower(task.Category) {
	case "creative", "design", "writing":
		if hour >= 9 && hour <= 11 {
			score += 15
			reasons = append(reasons, "Optimal time for creative work")
		}
	case "administrative", "admin":
		if hour >= 14 && hour <= 16 {
			score += 15
			reasons = append(reasons, "Optimal time for administrative work")
		}
	case "communication", "email":
		if hour >= 10 && hour <= 12 {
			score += 10
			reasons = append(reasons, "Optimal time for communication")
		}
	}

	// Deadline pressure, measured from the candidate slot itself.
	if task.DueDate != nil {
		until := task.DueDate.Sub(slotStart)
		if until < 24*time.Hour {
			score += 30
			reasons = append(reasons, "Due soon")
		} else if until < 72*time.Hour {
			score += 15
		}
	}

	if len(reasons) == 0 {
		return score, "Available time slot"
	}
	return score, strings.Join(reasons, "; ")
}

package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

// TimeBlock is one row of the merged agenda timeline.
type TimeBlock struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Title string    `json:"title"`
	Kind  string    `json:"kind"` // task | event
}

// AgendaSummary holds the day's headline counts.
type AgendaSummary struct {
	TotalTasks      int `json:"totalTasks"`
	HighPriority    int `json:"highPriority"` // high + urgent
	Meetings        int `json:"meetings"`
	WorkloadMinutes int `json:"workloadMinutes"`
}

// Agenda is the computed daily overview.
type Agenda struct {
	Date        time.Time     `json:"date"`
	Summary     AgendaSummary `json:"summary"`
	TimeBlocks  []TimeBlock   `json:"timeBlocks"`
	Suggestions []string      `json:"suggestions,omitempty"`
	Insights    []string      `json:"insights,omitempty"`
}

// DailyAgenda builds the agenda for a date from task, event and note
// snapshots: summary counts, a merged time-sorted timeline, and
// workload/preparation advice.
func DailyAgenda(tasks []store.Task, events []store.CalendarEvent, notes []store.Note, date time.Time) Agenda {
	var dayTasks []store.Task
	for _, t := range tasks {
		onDate := (t.DueDate != nil && sameDay(*t.DueDate, date)) ||
			(t.ScheduledTime != nil && sameDay(*t.ScheduledTime, date))
		if onDate {
			dayTasks = append(dayTasks, t)
		}
	}

	var dayEvents []store.CalendarEvent
	for _, e := range events {
		if sameDay(e.Start, date) {
			dayEvents = append(dayEvents, e)
		}
	}

	agenda := Agenda{Date: date}
	agenda.Summary.TotalTasks = len(dayTasks)

	meetingMinutes := 0
	for _, t := range dayTasks {
		if t.Priority == store.PriorityHigh || t.Priority == store.PriorityUrgent {
			agenda.Summary.HighPriority++
		}
		agenda.Summary.WorkloadMinutes += taskDuration(t.EstimatedDuration)
	}
	for _, e := range dayEvents {
		if isMeeting(e) {
			agenda.Summary.Meetings++
			meetingMinutes += int(e.End.Sub(e.Start).Minutes())
		}
	}

	// Merged timeline of scheduled tasks and events.
	for _, t := range dayTasks {
		if t.ScheduledTime == nil {
			continue
		}
		end := t.ScheduledTime.Add(time.Duration(taskDuration(t.EstimatedDuration)) * time.Minute)
		if t.ScheduledEndTime != nil {
			end = *t.ScheduledEndTime
		}
		agenda.TimeBlocks = append(agenda.TimeBlocks, TimeBlock{
			Start: *t.ScheduledTime,
			End:   end,
			Title: t.Title,
			Kind:  "task",
		})
	}
	for _, e := range dayEvents {
		agenda.TimeBlocks = append(agenda.TimeBlocks, TimeBlock{
			Start: e.Start,
			End:   e.End,
			Title: e.Title,
			Kind:  "event",
		})
	}
	sort.SliceStable(agenda.TimeBlocks, func(i, j int) bool {
		return agenda.TimeBlocks[i].Start.Before(agenda.TimeBlocks[j].Start)
	})

	// Suggestions
	if agenda.Summary.WorkloadMinutes > 8*60 {
		agenda.Suggestions = append(agenda.Suggestions,
			fmt.Sprintf("Estimated workload is %.1f hours; consider deferring lower-priority tasks", float64(agenda.Summary.WorkloadMinutes)/60))
	}
	for _, e := range dayEvents {
		if isMeeting(e) && !hasPrepNote(e, notes) {
			agenda.Suggestions = append(agenda.Suggestions,
				fmt.Sprintf("No prep notes found for %q", e.Title))
		}
	}

	// Insights
	if agenda.Summary.HighPriority > 3 {
		agenda.Insights = append(agenda.Insights,
			"More than three high-priority tasks today; focus on the top of the list")
	}
	if meetingMinutes > 4*60 {
		agenda.Insights = append(agenda.Insights,
			"Over four hours of meetings today; deep work time is limited")
	}

	return agenda
}

func isMeeting(e store.CalendarEvent) bool {
	return strings.EqualFold(e.Category, "meeting") ||
		strings.Contains(strings.ToLower(e.Title), "meeting")
}

// hasPrepNote reports whether any note references the meeting by title
// or tag.
func hasPrepNote(e store.CalendarEvent, notes []store.Note) bool {
	title := strings.ToLower(e.Title)
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), title) {
			return true
		}
		for _, tag := range n.Tags {
			if tag != "" && strings.Contains(title, strings.ToLower(tag)) {
				return true
			}
		}
	}
	return false
}

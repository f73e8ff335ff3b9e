package schedule

import (
	"strings"
	"testing"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

func TestDailyAgendaSummary(t *testing.T) {
	date := day(0, 0)
	due := day(17, 0)
	otherDay := due.AddDate(0, 0, 1)

	tasks := []store.Task{
		{ID: "t1", Title: "Report", Priority: store.PriorityHigh, DueDate: &due, EstimatedDuration: 90},
		{ID: "t2", Title: "Errand", Priority: store.PriorityLow, DueDate: &due, EstimatedDuration: 30},
		{ID: "t3", Title: "Later", DueDate: &otherDay},
	}
	events := []store.CalendarEvent{
		event("Team meeting", day(10, 0), day(11, 0)),
		event("Lunch", day(12, 0), day(13, 0)),
	}

	agenda := DailyAgenda(tasks, events, nil, date)

	if agenda.Summary.TotalTasks != 2 {
		t.Errorf("total tasks = %d, want 2", agenda.Summary.TotalTasks)
	}
	if agenda.Summary.HighPriority != 1 {
		t.Errorf("high priority = %d, want 1", agenda.Summary.HighPriority)
	}
	if agenda.Summary.Meetings != 1 {
		t.Errorf("meetings = %d, want 1 (lunch is not a meeting)", agenda.Summary.Meetings)
	}
	if agenda.Summary.WorkloadMinutes != 120 {
		t.Errorf("workload = %d, want 120", agenda.Summary.WorkloadMinutes)
	}
}

func TestDailyAgendaTimelineSorted(t *testing.T) {
	date := day(0, 0)
	at14 := day(14, 0)
	at9 := day(9, 0)

	tasks := []store.Task{
		{ID: "t1", Title: "Afternoon work", ScheduledTime: &at14, EstimatedDuration: 60},
		{ID: "t2", Title: "Morning work", ScheduledTime: &at9, EstimatedDuration: 30},
	}
	events := []store.CalendarEvent{
		event("Sync meeting", day(11, 0), day(11, 30)),
	}

	agenda := DailyAgenda(tasks, events, nil, date)
	if len(agenda.TimeBlocks) != 3 {
		t.Fatalf("time blocks = %d, want 3", len(agenda.TimeBlocks))
	}
	for i := 1; i < len(agenda.TimeBlocks); i++ {
		if agenda.TimeBlocks[i].Start.Before(agenda.TimeBlocks[i-1].Start) {
			t.Errorf("timeline out of order at %d: %v", i, agenda.TimeBlocks)
		}
	}
	if agenda.TimeBlocks[0].Kind != "task" || agenda.TimeBlocks[0].Title != "Morning work" {
		t.Errorf("first block = %+v, want the 09:00 task", agenda.TimeBlocks[0])
	}
	if agenda.TimeBlocks[1].Kind != "event" {
		t.Errorf("second block = %+v, want the 11:00 event", agenda.TimeBlocks[1])
	}
}

func TestDailyAgendaOverloadSuggestion(t *testing.T) {
	date := day(0, 0)
	due := day(17, 0)
	tasks := []store.Task{
		{ID: "t1", DueDate: &due, EstimatedDuration: 300},
		{ID: "t2", DueDate: &due, EstimatedDuration: 300},
	}

	agenda := DailyAgenda(tasks, nil, nil, date)
	found := false
	for _, s := range agenda.Suggestions {
		if strings.Contains(s, "workload") {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions = %v, want a workload warning above 8 hours", agenda.Suggestions)
	}
}

func TestDailyAgendaMeetingPrep(t *testing.T) {
	date := day(0, 0)
	events := []store.CalendarEvent{
		event("Budget meeting", day(10, 0), day(11, 0)),
		event("Design meeting", day(14, 0), day(15, 0)),
	}
	notes := []store.Note{
		{ID: "n1", Title: "Agenda for budget meeting", Content: "numbers"},
	}

	agenda := DailyAgenda(nil, events, notes, date)

	var unprepped []string
	for _, s := range agenda.Suggestions {
		if strings.Contains(s, "No prep notes") {
			unprepped = append(unprepped, s)
		}
	}
	if len(unprepped) != 1 || !strings.Contains(unprepped[0], "Design meeting") {
		t.Errorf("prep suggestions = %v, want one for the design meeting only", unprepped)
	}
}

func TestDailyAgendaInsights(t *testing.T) {
	date := day(0, 0)
	due := day(17, 0)

	var tasks []store.Task
	for _, id := range []string{"a", "b", "c", "d"} {
		tasks = append(tasks, store.Task{ID: id, Priority: store.PriorityUrgent, DueDate: &due, EstimatedDuration: 10})
	}
	events := []store.CalendarEvent{
		event("All-hands meeting", day(9, 0), day(12, 0)),
		event("Planning meeting", day(13, 0), day(15, 30)),
	}
	notes := []store.Note{
		{ID: "n1", Title: "Notes covering all-hands meeting and planning meeting"},
	}

	agenda := DailyAgenda(tasks, events, notes, date)
	if len(agenda.Insights) != 2 {
		t.Errorf("insights = %v, want high-priority and meeting-load callouts", agenda.Insights)
	}
}

func TestDailyAgendaScheduledOnDateCounts(t *testing.T) {
	date := day(0, 0)
	at10 := day(10, 0)
	tasks := []store.Task{
		{ID: "t1", Title: "Scheduled only", ScheduledTime: &at10, EstimatedDuration: 60},
	}

	agenda := DailyAgenda(tasks, nil, nil, date)
	if agenda.Summary.TotalTasks != 1 {
		t.Errorf("task scheduled today without a due date must count: %+v", agenda.Summary)
	}
}

package schedule

import (
	"testing"
	"time"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

func TestExpandRecurringNilPattern(t *testing.T) {
	task := store.Task{ID: "t1"}
	if got := ExpandRecurring(task, day(0, 0), day(0, 0).AddDate(0, 0, 30)); got != nil {
		t.Errorf("expansion of a non-recurring task = %v, want nil", got)
	}
}

func TestExpandRecurringDaily(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	task := store.Task{
		ID:         "standup",
		Title:      "Standup",
		Recurrence: &store.Recurrence{Type: "daily", Interval: 1},
		Completed:  true, // instances start fresh
	}

	instances := ExpandRecurring(task, start, end)
	if len(instances) != 5 {
		t.Fatalf("instances = %d, want 5", len(instances))
	}
	if instances[0].ID != "standup_2026-03-01" || instances[4].ID != "standup_2026-03-05" {
		t.Errorf("ids = %s .. %s", instances[0].ID, instances[4].ID)
	}
	for i, inst := range instances {
		if inst.ParentTaskID != "standup" || !inst.IsRecurringInstance {
			t.Errorf("instance %d missing parent linkage", i)
		}
		if inst.Recurrence != nil || inst.Completed || inst.ScheduledTime != nil {
			t.Errorf("instance %d inherited per-occurrence state", i)
		}
		if inst.DueDate == nil || inst.DueDate.Before(start) || inst.DueDate.After(end) {
			t.Errorf("instance %d due date outside range", i)
		}
	}
}

func TestExpandRecurringWeeklyInterval(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	task := store.Task{
		ID:         "review",
		Recurrence: &store.Recurrence{Type: "weekly", Interval: 2},
	}

	instances := ExpandRecurring(task, start, end)
	if len(instances) != 3 {
		t.Fatalf("instances = %d, want 3 (days 0, 14, 28)", len(instances))
	}
	for i, inst := range instances {
		want := start.AddDate(0, 0, 14*i)
		if !inst.DueDate.Equal(want) {
			t.Errorf("instance %d due %v, want %v", i, inst.DueDate, want)
		}
	}
}

func TestExpandRecurringMonthlyAndYearly(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	monthly := ExpandRecurring(
		store.Task{ID: "rent", Recurrence: &store.Recurrence{Type: "monthly", Interval: 1}},
		start, start.AddDate(0, 3, 0))
	if len(monthly) != 4 {
		t.Errorf("monthly instances = %d, want 4", len(monthly))
	}

	yearly := ExpandRecurring(
		store.Task{ID: "renewal", Recurrence: &store.Recurrence{Type: "yearly", Interval: 1}},
		start, start.AddDate(2, 0, 0))
	if len(yearly) != 3 {
		t.Errorf("yearly instances = %d, want 3", len(yearly))
	}
}

func TestExpandRecurringBounded(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	task := store.Task{
		ID:         "daily",
		Recurrence: &store.Recurrence{Type: "daily", Interval: 1},
	}

	instances := ExpandRecurring(task, start, start.AddDate(3, 0, 0))
	if len(instances) != maxRecurringInstances {
		t.Errorf("instances = %d, want capped at %d", len(instances), maxRecurringInstances)
	}
}

func TestExpandRecurringZeroInterval(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	task := store.Task{
		ID:         "t1",
		Recurrence: &store.Recurrence{Type: "daily", Interval: 0},
	}

	instances := ExpandRecurring(task, start, start.AddDate(0, 0, 2))
	if len(instances) != 3 {
		t.Errorf("instances = %d, want 3 (zero interval treated as 1)", len(instances))
	}
}

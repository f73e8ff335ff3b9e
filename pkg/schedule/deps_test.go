package schedule

import (
	"testing"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

func TestAnalyzeDependenciesChains(t *testing.T) {
	tasks := []store.Task{
		{ID: "a", Dependencies: []string{"b"}},
		{ID: "b", Dependencies: []string{"c"}},
		{ID: "c"},
	}

	report := AnalyzeDependencies(tasks)
	if len(report.Chains) != 2 {
		t.Fatalf("chains = %v, want 2 (from a and from b)", report.Chains)
	}
	if !equalStrings(report.Chains[0], []string{"a", "b", "c"}) {
		t.Errorf("chain from a = %v, want [a b c]", report.Chains[0])
	}
	if !equalStrings(report.Chains[1], []string{"b", "c"}) {
		t.Errorf("chain from b = %v, want [b c]", report.Chains[1])
	}
	if len(report.Cycles) != 0 {
		t.Errorf("cycles = %v, want none", report.Cycles)
	}
}

func TestAnalyzeDependenciesCycle(t *testing.T) {
	tasks := []store.Task{
		{ID: "x", Dependencies: []string{"y"}},
		{ID: "y", Dependencies: []string{"x"}},
		{ID: "z"},
	}

	// Must terminate and record the cycle exactly once.
	report := AnalyzeDependencies(tasks)
	if len(report.Cycles) != 1 {
		t.Fatalf("cycles = %v, want exactly one record", report.Cycles)
	}
	if !equalStrings(report.Cycles[0], []string{"x", "y"}) {
		t.Errorf("cycle = %v, want [x y]", report.Cycles[0])
	}
}

func TestAnalyzeDependenciesBlockers(t *testing.T) {
	tasks := []store.Task{
		{ID: "core", Title: "Core work"},
		{ID: "a", Dependencies: []string{"core"}},
		{ID: "b", Dependencies: []string{"core"}},
		{ID: "c", Dependencies: []string{"core"}},
		{ID: "done", Completed: true, Dependencies: []string{"core"}},
		{ID: "minor", Title: "Minor"},
		{ID: "d", Dependencies: []string{"minor"}},
		{ID: "finished", Title: "Finished", Completed: true},
		{ID: "e", Dependencies: []string{"finished"}},
	}

	report := AnalyzeDependencies(tasks)
	if len(report.Blockers) != 2 {
		t.Fatalf("blockers = %v, want core and minor", report.Blockers)
	}
	byID := make(map[string]Blocker)
	for _, b := range report.Blockers {
		byID[b.TaskID] = b
	}
	if byID["core"].Impact != 3 {
		t.Errorf("core impact = %d, want 3 (completed dependent excluded)", byID["core"].Impact)
	}
	if byID["minor"].Impact != 1 {
		t.Errorf("minor impact = %d, want 1", byID["minor"].Impact)
	}
	if _, ok := byID["finished"]; ok {
		t.Error("completed task must not appear as a blocker")
	}

	if len(report.CriticalPath) != 2 || report.CriticalPath[0].TaskID != "core" {
		t.Errorf("critical path = %v, want core first", report.CriticalPath)
	}

	if len(report.Suggestions) != 1 || report.Suggestions[0].TaskID != "core" {
		t.Fatalf("suggestions = %v, want one for core (impact > 2)", report.Suggestions)
	}
	if report.Suggestions[0].Message == "" {
		t.Error("suggestion message is empty")
	}
}

func TestAnalyzeDependenciesEmpty(t *testing.T) {
	report := AnalyzeDependencies(nil)
	if len(report.Chains) != 0 || len(report.Blockers) != 0 || len(report.Suggestions) != 0 {
		t.Errorf("report on no tasks = %+v, want empty", report)
	}
}

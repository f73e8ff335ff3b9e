package schedule

import (
	"fmt"
	"sort"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

// Blocker is an incomplete task that other incomplete tasks wait on.
type Blocker struct {
	TaskID string `json:"taskId"`
	Title  string `json:"title"`
	Impact int    `json:"impact"` // number of incomplete dependents
}

// Suggestion recommends acting on a high-impact blocker.
type Suggestion struct {
	TaskID  string `json:"taskId"`
	Message string `json:"message"`
}

// DependencyReport is the result of analyzing a task set's dependency
// graph. Cycles are reported separately from chains so callers can warn
// the user instead of silently losing them.
type DependencyReport struct {
	Chains       [][]string   `json:"chains"`
	Cycles       [][]string   `json:"cycles,omitempty"`
	Blockers     []Blocker    `json:"blockers"`
	CriticalPath []Blocker    `json:"criticalPath"`
	Suggestions  []Suggestion `json:"suggestions,omitempty"`
}

// AnalyzeDependencies walks the task dependency graph. Cyclic graphs
// degrade to truncated chains plus a cycle record; they never loop or
// fail the blocker computation.
func AnalyzeDependencies(tasks []store.Task) DependencyReport {
	adjacency := make(map[string][]string)
	byID := make(map[string]store.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
		if len(t.Dependencies) > 0 {
			adjacency[t.ID] = t.Dependencies
		}
	}

	var report DependencyReport

	// Chains: depth-first from every task, following dependencies.
	for _, t := range tasks {
		if len(adjacency[t.ID]) == 0 {
			continue
		}
		inWalk := make(map[string]bool)
		chain := walkChain(t.ID, adjacency, inWalk, &report.Cycles)
		if len(chain) > 1 {
			report.Chains = append(report.Chains, chain)
		}
	}

	// Blockers: incomplete tasks with at least one incomplete dependent.
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		impact := 0
		for _, other := range tasks {
			if other.Completed || other.ID == t.ID {
				continue
			}
			for _, dep := range other.Dependencies {
				if dep == t.ID {
					impact++
					break
				}
			}
		}
		if impact > 0 {
			report.Blockers = append(report.Blockers, Blocker{
				TaskID: t.ID,
				Title:  t.Title,
				Impact: impact,
			})
		}
	}

	report.CriticalPath = make([]Blocker, len(report.Blockers))
	copy(report.CriticalPath, report.Blockers)
	sort.SliceStable(report.CriticalPath, func(i, j int) bool {
		return report.CriticalPath[i].Impact > report.CriticalPath[j].Impact
	})

	for _, b := range report.CriticalPath {
		if b.Impact > 2 {
			report.Suggestions = append(report.Suggestions, Suggestion{
				TaskID:  b.TaskID,
				Message: fmt.Sprintf("Prioritize %q: it blocks %d other tasks", b.Title, b.Impact),
			})
		}
	}

	return report
}

// walkChain follows dependencies depth-first. Revisiting an id inside the
// current walk means a cycle: the repeated id is recorded and the branch
// truncated rather than recursed into.
func walkChain(id string, adjacency map[string][]string, inWalk map[string]bool, cycles *[][]string) []string {
	if inWalk[id] {
		cycle := make([]string, 0, len(inWalk)+1)
		for seen := range inWalk {
			cycle = append(cycle, seen)
		}
		sort.Strings(cycle)
		*cycles = appendCycle(*cycles, cycle)
		return nil
	}
	inWalk[id] = true
	defer delete(inWalk, id)

	chain := []string{id}
	for _, dep := range adjacency[id] {
		chain = append(chain, walkChain(dep, adjacency, inWalk, cycles)...)
	}
	return chain
}

// appendCycle deduplicates cycle records by membership.
func appendCycle(cycles [][]string, cycle []string) [][]string {
	for _, existing := range cycles {
		if equalStrings(existing, cycle) {
			return cycles
		}
	}
	return append(cycles, cycle)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

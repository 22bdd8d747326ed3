// Package query derives filtered, sorted and aggregated views from task
// snapshots. Everything here is pure: inputs are never mutated and nothing
// is persisted.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/josephgoksu/goalmate/models"
)

// FilterMode selects which completion states a view includes.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterActive    FilterMode = "active"
	FilterCompleted FilterMode = "completed"
)

// ParseFilterMode maps user input onto a FilterMode. Unknown values fall
// back to FilterAll.
func ParseFilterMode(s string) FilterMode {
	switch FilterMode(strings.ToLower(strings.TrimSpace(s))) {
	case FilterActive:
		return FilterActive
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Filter returns the tasks matching the given mode, preserving input order.
func Filter(tasks []models.Task, mode FilterMode) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		switch mode {
		case FilterActive:
			if !t.Completed {
				out = append(out, t)
			}
		case FilterCompleted:
			if t.Completed {
				out = append(out, t)
			}
		default:
			out = append(out, t)
		}
	}
	return out
}

// priorityRank orders priorities for sorting, highest first.
func priorityRank(p models.TaskPriority) int {
	switch p {
	case models.PriorityHigh:
		return 3
	case models.PriorityMedium:
		return 2
	case models.PriorityLow:
		return 1
	default:
		return 0
	}
}

// Sort returns a new slice ordered for display: incomplete before completed,
// then priority descending, then earlier due date first, then earlier
// creation time first. Within a completion/priority tier, a task without a
// due date sorts after every dated task. The sort is stable, so repeated
// sorting never reorders ties.
func Sort(tasks []models.Task) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if a.Completed != b.Completed {
			return !a.Completed
		}

		if pa, pb := priorityRank(a.Priority), priorityRank(b.Priority); pa != pb {
			return pa > pb
		}

		dueA, okA := a.Due()
		dueB, okB := b.Due()
		switch {
		case okA && okB:
			if !dueA.Equal(dueB) {
				return dueA.Before(dueB)
			}
		case okA != okB:
			// Undated tasks sort after all dated tasks in the same tier.
			return okA
		}

		return a.CreatedAt.Before(b.CreatedAt)
	})

	return sorted
}

// IsOverdue reports whether the task's due date is strictly before today.
// The comparison is date-only; completed tasks are never overdue.
func IsOverdue(task models.Task, today time.Time) bool {
	if task.Completed {
		return false
	}
	due, ok := task.Due()
	if !ok {
		return false
	}
	y, m, d := today.Date()
	startOfToday := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return due.Before(startOfToday) && !sameDate(due, startOfToday)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Summary holds aggregate counters over a task snapshot.
type Summary struct {
	Total            int
	Completed        int
	Remaining        int
	HighPriorityOpen int
	Overdue          int
}

// Aggregate computes summary counters in a single pass.
func Aggregate(tasks []models.Task, today time.Time) Summary {
	var s Summary
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
			continue
		}
		s.Remaining++
		if t.Priority == models.PriorityHigh {
			s.HighPriorityOpen++
		}
		if IsOverdue(t, today) {
			s.Overdue++
		}
	}
	return s
}

// Search returns the tasks whose text contains the query as a
// case-insensitive substring. An empty query matches everything.
func Search(tasks []models.Task, q string) []models.Task {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		out := make([]models.Task, len(tasks))
		copy(out, tasks)
		return out
	}
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Text), q) {
			out = append(out, t)
		}
	}
	return out
}

package query

import (
	"testing"
	"time"

	"github.com/josephgoksu/goalmate/models"
)

func mkTask(id int64, text string, priority models.TaskPriority, due string, completed bool, createdAt time.Time) models.Task {
	task := models.Task{
		ID:        id,
		Text:      text,
		Completed: completed,
		Priority:  priority,
		CreatedAt: createdAt,
	}
	if due != "" {
		task.DueDate = &due
	}
	return task
}

var baseTime = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func texts(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func assertOrder(t *testing.T, got []models.Task, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tasks %v, want %d %v", len(got), texts(got), len(want), want)
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, texts(got), want)
		}
	}
}

func TestFilter(t *testing.T) {
	tasks := []models.Task{
		mkTask(1, "open", models.PriorityMedium, "", false, baseTime),
		mkTask(2, "done", models.PriorityMedium, "", true, baseTime),
	}

	assertOrder(t, Filter(tasks, FilterAll), "open", "done")
	assertOrder(t, Filter(tasks, FilterActive), "open")
	assertOrder(t, Filter(tasks, FilterCompleted), "done")
}

func TestParseFilterModeUnknownFallsBackToAll(t *testing.T) {
	for _, input := range []string{"", "bogus", "ALL", "Active"} {
		mode := ParseFilterMode(input)
		switch input {
		case "ALL", "", "bogus":
			if mode != FilterAll {
				t.Errorf("ParseFilterMode(%q) = %v, want all", input, mode)
			}
		case "Active":
			if mode != FilterActive {
				t.Errorf("ParseFilterMode(%q) = %v, want active", input, mode)
			}
		}
	}
}

func TestSortHighPriorityFirst(t *testing.T) {
	tasks := []models.Task{
		mkTask(2, "B", models.PriorityLow, "2025-01-02", false, baseTime),
		mkTask(1, "A", models.PriorityHigh, "2025-01-01", false, baseTime),
	}

	assertOrder(t, Sort(tasks), "A", "B")
}

func TestSortIncompleteDominatesPriority(t *testing.T) {
	tasks := []models.Task{
		mkTask(1, "A", models.PriorityHigh, "2025-01-01", true, baseTime),
		mkTask(2, "B", models.PriorityLow, "2025-01-02", false, baseTime),
	}

	// A is high priority but completed; the incomplete-first rule dominates.
	assertOrder(t, Sort(tasks), "B", "A")
}

func TestSortUndatedAfterDatedWithinTier(t *testing.T) {
	tasks := []models.Task{
		mkTask(1, "undated", models.PriorityMedium, "", false, baseTime),
		mkTask(2, "dated", models.PriorityMedium, "2025-03-01", false, baseTime.Add(time.Hour)),
	}

	assertOrder(t, Sort(tasks), "dated", "undated")
}

func TestSortTiesBreakOnCreationTime(t *testing.T) {
	tasks := []models.Task{
		mkTask(2, "younger", models.PriorityMedium, "", false, baseTime.Add(time.Hour)),
		mkTask(1, "older", models.PriorityMedium, "", false, baseTime),
	}

	assertOrder(t, Sort(tasks), "older", "younger")
}

func TestSortIsIdempotentAndNonDestructive(t *testing.T) {
	tasks := []models.Task{
		mkTask(1, "c", models.PriorityLow, "", true, baseTime),
		mkTask(2, "a", models.PriorityHigh, "2025-02-01", false, baseTime),
		mkTask(3, "b", models.PriorityHigh, "", false, baseTime),
		mkTask(4, "d", models.PriorityMedium, "2025-01-15", false, baseTime),
	}

	once := Sort(tasks)
	twice := Sort(once)
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("sort not idempotent: %v vs %v", texts(once), texts(twice))
		}
	}

	// Input order must be untouched.
	assertOrder(t, tasks, "c", "a", "b", "d")
}

func TestIsOverdue(t *testing.T) {
	today := time.Date(2025, 1, 10, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		task models.Task
		want bool
	}{
		{"past due open", mkTask(1, "a", models.PriorityMedium, "2025-01-09", false, baseTime), true},
		{"due today", mkTask(2, "b", models.PriorityMedium, "2025-01-10", false, baseTime), false},
		{"due tomorrow", mkTask(3, "c", models.PriorityMedium, "2025-01-11", false, baseTime), false},
		{"no due date", mkTask(4, "d", models.PriorityMedium, "", false, baseTime), false},
		{"past due but completed", mkTask(5, "e", models.PriorityMedium, "2024-12-01", true, baseTime), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOverdue(tc.task, today); got != tc.want {
				t.Errorf("IsOverdue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	today := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		mkTask(1, "a", models.PriorityHigh, "2025-01-01", false, baseTime), // open, high, overdue
		mkTask(2, "b", models.PriorityLow, "", false, baseTime),            // open
		mkTask(3, "c", models.PriorityHigh, "2024-12-01", true, baseTime),  // completed (never overdue)
	}

	s := Aggregate(tasks, today)
	if s.Total != 3 || s.Completed != 1 || s.Remaining != 2 {
		t.Errorf("counts wrong: %+v", s)
	}
	if s.HighPriorityOpen != 1 {
		t.Errorf("HighPriorityOpen = %d, want 1", s.HighPriorityOpen)
	}
	if s.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1", s.Overdue)
	}
}

func TestSearch(t *testing.T) {
	tasks := []models.Task{
		mkTask(1, "Buy milk", models.PriorityMedium, "", false, baseTime),
		mkTask(2, "buy MILK substitute", models.PriorityMedium, "", false, baseTime),
		mkTask(3, "walk dog", models.PriorityMedium, "", false, baseTime),
	}

	assertOrder(t, Search(tasks, "milk"), "Buy milk", "buy MILK substitute")
	assertOrder(t, Search(tasks, "  "), "Buy milk", "buy MILK substitute", "walk dog")
	if got := Search(tasks, "gym"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", texts(got))
	}
}

package query

import (
	"testing"
	"time"

	"github.com/josephgoksu/goalmate/models"
	"pgregory.net/rapid"
)

func genTask(t *rapid.T, id int64) models.Task {
	priorities := []models.TaskPriority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}
	task := models.Task{
		ID:        id,
		Text:      rapid.StringMatching(`[a-z]{1,12}`).Draw(t, "text"),
		Completed: rapid.Bool().Draw(t, "completed"),
		Priority:  priorities[rapid.IntRange(0, 2).Draw(t, "priority")],
		CreatedAt: time.Unix(rapid.Int64Range(0, 1e9).Draw(t, "createdAt"), 0).UTC(),
	}
	if rapid.Bool().Draw(t, "hasDue") {
		day := rapid.IntRange(1, 28).Draw(t, "dueDay")
		due := time.Date(2025, time.Month(rapid.IntRange(1, 12).Draw(t, "dueMonth")), day, 0, 0, 0, 0, time.UTC).Format(models.DueDateLayout)
		task.DueDate = &due
	}
	return task
}

// TestSortProperties checks that sorting is idempotent, length-preserving,
// and puts every incomplete task ahead of every completed one.
func TestSortProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(rt, "n")
		tasks := make([]models.Task, n)
		for i := range tasks {
			tasks[i] = genTask(rt, int64(i+1))
		}

		once := Sort(tasks)
		if len(once) != len(tasks) {
			rt.Fatalf("sort changed length: %d -> %d", len(tasks), len(once))
		}

		twice := Sort(once)
		for i := range once {
			if once[i].ID != twice[i].ID {
				rt.Fatalf("sort not idempotent at index %d", i)
			}
		}

		seenCompleted := false
		for _, task := range once {
			if task.Completed {
				seenCompleted = true
			} else if seenCompleted {
				rt.Fatalf("incomplete task after a completed one: %v", texts(once))
			}
		}
	})
}

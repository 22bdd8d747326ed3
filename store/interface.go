package store

import "github.com/josephgoksu/goalmate/models"

// ListStore defines the interface for persisting one logical task list.
// The store is the sole owner of the canonical ordered collection; every
// mutating operation persists the full collection before returning, so a
// crash after a call never loses the prior successful mutation.
type ListStore interface {
	// Initialize configures the store with necessary parameters, such as
	// file path and data format. It loads existing tasks (read-through,
	// once per session) and must be called before any other operation.
	// A missing or unreadable data file yields an empty collection, never
	// an error.
	Initialize(config map[string]string) error

	// Add constructs a task from the given text, priority and optional due
	// date (empty string for none), assigns it a fresh ID and appends it to
	// the end of the collection. Text that trims to empty is rejected.
	Add(text string, priority models.TaskPriority, dueDate string) (models.Task, error)

	// Get retrieves a task by ID. found is false when no task has that ID.
	Get(id int64) (task models.Task, found bool, err error)

	// Toggle flips the completed flag of the task with the given ID.
	// A missing ID is a no-op (found=false), not an error.
	Toggle(id int64) (task models.Task, found bool, err error)

	// Remove deletes the task with the given ID. A missing ID is a no-op.
	Remove(id int64) (found bool, err error)

	// ClearCompleted removes every completed task, preserving the insertion
	// order of the remainder. It returns the number of tasks removed.
	ClearCompleted() (int, error)

	// Tasks returns a snapshot copy of the collection in insertion order.
	Tasks() ([]models.Task, error)

	// Backup copies the current task data to the destination path.
	Backup(destinationPath string) error

	// Restore replaces the current task data with data from the source path.
	Restore(sourcePath string) error

	// Close releases the file lock and any other held resources.
	Close() error
}

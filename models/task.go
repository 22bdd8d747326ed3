package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// DueDateLayout is the calendar-date format used for due dates. Due dates
// carry no time component; comparisons are date-only.
const DueDateLayout = "2006-01-02"

// Task represents a single to-do item. IDs are assigned by the store from a
// monotonically increasing counter and are unique within a list.
type Task struct {
	ID        int64        `json:"id" yaml:"id" toml:"id" validate:"required,gt=0"`
	Text      string       `json:"text" yaml:"text" toml:"text" validate:"required,min=1"`
	Completed bool         `json:"completed" yaml:"completed" toml:"completed"`
	Priority  TaskPriority `json:"priority" yaml:"priority" toml:"priority" validate:"required,oneof=low medium high"`
	DueDate   *string      `json:"dueDate,omitempty" yaml:"dueDate,omitempty" toml:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CreatedAt time.Time    `json:"createdAt" yaml:"createdAt" toml:"createdAt" validate:"required"`
}

// Due parses the task's due date. ok is false when no due date is set.
func (t Task) Due() (due time.Time, ok bool) {
	if t.DueDate == nil || *t.DueDate == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(DueDateLayout, *t.DueDate)
	if err != nil {
		// A due date that passed validation cannot fail to parse; treat a
		// hand-edited bad value as "no due date".
		return time.Time{}, false
	}
	return parsed, true
}

// TaskList is the persisted representation of a single logical list.
// There is deliberately no schema version field; the stored layout is the
// task record itself.
type TaskList struct {
	Tasks      []Task `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
	TotalCount int    `json:"totalCount" yaml:"totalCount" toml:"totalCount"`
}

// ParsePriority maps user input onto a TaskPriority, defaulting to medium
// for an empty value. Unknown values are an error, not a silent default.
func ParsePriority(s string) (TaskPriority, error) {
	switch TaskPriority(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid priority %q (expected low, medium or high)", s)
	}
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

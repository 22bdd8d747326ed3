package interpret

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/josephgoksu/goalmate/llm"
	"github.com/josephgoksu/goalmate/models"
	"github.com/josephgoksu/goalmate/store"
	"github.com/josephgoksu/goalmate/types"
)

// State is the interpreter's input-channel state. Only one interpretation
// request may be in flight at a time; callers must not start a new capture
// while a prior command is still being interpreted.
type State int

const (
	StateIdle State = iota
	StateAwaitingInterpretation
)

// Status codes carried by the StatusError values Interpret returns.
const (
	CodeNotUnderstood = "not_understood"
	CodeServiceError  = "service_error"
	CodeBusy          = "interpretation_in_flight"
)

// User-visible status messages.
const (
	statusNotUnderstood = "Could not understand the command. Please try again."
	statusServiceError  = "Error processing voice command. Please try again."
)

// OutcomeKind classifies what an applied intent did.
type OutcomeKind int

const (
	OutcomeAdded OutcomeKind = iota
	OutcomeCompleted
	OutcomeDeleted
	OutcomeNotFound
)

// Outcome describes the result of a successfully resolved command. NotFound
// is an outcome rather than an error: the command was understood, it just
// matched nothing.
type Outcome struct {
	Kind    OutcomeKind
	Intent  Intent
	Status  string        // user-visible status line
	Created *models.Task  // set for OutcomeAdded
	Matched []models.Task // tasks affected by complete/delete
}

// AddDefaults carries the form-state context applied to tasks created via an
// interpreted "add" command.
type AddDefaults struct {
	Priority models.TaskPriority
	DueDate  string
}

// Interpreter resolves natural-language instructions against a single task
// list. It is safe for concurrent use; overlapping interpretations are
// rejected rather than queued.
type Interpreter struct {
	provider     llm.Provider
	list         store.ListStore
	systemPrompt string
	opts         llm.CompletionOptions

	mu    sync.Mutex
	state State
}

// New creates an Interpreter bound to the given provider and list.
func New(provider llm.Provider, list store.ListStore, systemPrompt string, opts llm.CompletionOptions) *Interpreter {
	return &Interpreter{
		provider:     provider,
		list:         list,
		systemPrompt: systemPrompt,
		opts:         opts,
		state:        StateIdle,
	}
}

// State reports the current input-channel state.
func (i *Interpreter) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Interpret sends the transcript to the completion endpoint, extracts the
// intent, and applies it to the list. Every failure path (busy, network,
// non-2xx, missing or malformed JSON) returns a *types.StatusError and
// performs no mutation.
func (i *Interpreter) Interpret(ctx context.Context, transcript string, defaults AddDefaults) (Outcome, error) {
	i.mu.Lock()
	if i.state != StateIdle {
		i.mu.Unlock()
		return Outcome{}, types.NewStatusError(CodeBusy, "A command is already being interpreted. Please wait.", nil)
	}
	i.state = StateAwaitingInterpretation
	i.mu.Unlock()

	defer func() {
		i.mu.Lock()
		i.state = StateIdle
		i.mu.Unlock()
	}()

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return Outcome{}, types.NewStatusError(CodeNotUnderstood, statusNotUnderstood, nil)
	}

	messages := []llm.Message{
		{Role: "system", Content: i.systemPrompt},
		{Role: "user", Content: transcript},
	}

	content, err := i.provider.Complete(ctx, messages, i.opts)
	if err != nil {
		return Outcome{}, types.NewStatusError(CodeServiceError, statusServiceError, map[string]interface{}{"cause": err.Error()})
	}

	intent, err := ExtractIntent(content)
	if err != nil {
		return Outcome{}, types.NewStatusError(CodeNotUnderstood, statusNotUnderstood, map[string]interface{}{"cause": err.Error()})
	}

	return i.Apply(intent, defaults)
}

// Apply resolves a parsed intent against the list. Complete and delete use
// best-effort fuzzy matching: every task whose text contains the target as a
// case-insensitive substring is affected, not just the first.
func (i *Interpreter) Apply(intent Intent, defaults AddDefaults) (Outcome, error) {
	switch intent.Action {
	case ActionAdd:
		created, err := i.list.Add(intent.Task, defaults.Priority, defaults.DueDate)
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to add task from command: %w", err)
		}
		return Outcome{
			Kind:    OutcomeAdded,
			Intent:  intent,
			Status:  fmt.Sprintf("Added %q to your task list.", created.Text),
			Created: &created,
		}, nil

	case ActionComplete, ActionDelete:
		tasks, err := i.list.Tasks()
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to list tasks for command: %w", err)
		}
		target := strings.ToLower(intent.Task)
		var matched []models.Task
		for _, t := range tasks {
			if strings.Contains(strings.ToLower(t.Text), target) {
				matched = append(matched, t)
			}
		}
		if len(matched) == 0 {
			return Outcome{
				Kind:   OutcomeNotFound,
				Intent: intent,
				Status: fmt.Sprintf("Could not find a task containing %q", intent.Task),
			}, nil
		}

		if intent.Action == ActionComplete {
			for _, t := range matched {
				if _, _, err := i.list.Toggle(t.ID); err != nil {
					return Outcome{}, fmt.Errorf("failed to complete task %d: %w", t.ID, err)
				}
			}
			return Outcome{
				Kind:    OutcomeCompleted,
				Intent:  intent,
				Status:  fmt.Sprintf("Marked %q as completed", intent.Task),
				Matched: matched,
			}, nil
		}

		for _, t := range matched {
			if _, err := i.list.Remove(t.ID); err != nil {
				return Outcome{}, fmt.Errorf("failed to delete task %d: %w", t.ID, err)
			}
		}
		return Outcome{
			Kind:    OutcomeDeleted,
			Intent:  intent,
			Status:  fmt.Sprintf("Deleted task containing %q", intent.Task),
			Matched: matched,
		}, nil

	default:
		return Outcome{}, types.NewStatusError(CodeNotUnderstood, statusNotUnderstood, map[string]interface{}{"action": intent.Action.String()})
	}
}

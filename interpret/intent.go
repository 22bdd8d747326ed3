// Package interpret translates a natural-language instruction into a task
// store mutation by way of a hosted text-completion endpoint. A command that
// cannot be fully resolved never mutates state.
package interpret

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/josephgoksu/goalmate/models"
)

// Action is the tagged variant of an interpreted command.
type Action int

const (
	ActionUnknown Action = iota
	ActionAdd
	ActionComplete
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionComplete:
		return "complete"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Intent is the structured result of interpreting an instruction: what to do
// and the task text it targets.
type Intent struct {
	Action Action
	Task   string
}

var (
	// ErrNoIntent is returned when the model output contains no JSON object.
	ErrNoIntent = errors.New("no intent object found in model output")
	// ErrBadIntent is returned when a JSON object was found but does not
	// decode into a well-formed intent.
	ErrBadIntent = errors.New("model output is not a well-formed intent")
)

// wireIntent is the raw JSON shape the model is asked to produce.
type wireIntent struct {
	Action string `json:"action" validate:"required,oneof=add complete delete"`
	Task   string `json:"task" validate:"required,min=1"`
}

// ExtractIntent locates the first balanced {...} substring of the raw model
// output and decodes it strictly. Any shape mismatch fails into the
// ambiguous-command path: ErrNoIntent when no object is present, ErrBadIntent
// when the object is malformed or missing fields.
func ExtractIntent(raw string) (Intent, error) {
	obj, ok := firstJSONObject(raw)
	if !ok {
		return Intent{}, ErrNoIntent
	}

	var wire wireIntent
	if err := json.Unmarshal([]byte(obj), &wire); err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrBadIntent, err)
	}
	// Models are told to use lowercase action names but don't always comply.
	wire.Action = strings.ToLower(strings.TrimSpace(wire.Action))
	wire.Task = strings.TrimSpace(wire.Task)
	if err := models.ValidateStruct(wire); err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrBadIntent, err)
	}

	intent := Intent{Task: wire.Task}

	switch wire.Action {
	case "add":
		intent.Action = ActionAdd
	case "complete":
		intent.Action = ActionComplete
	case "delete":
		intent.Action = ActionDelete
	default:
		return Intent{}, fmt.Errorf("%w: unknown action %q", ErrBadIntent, wire.Action)
	}

	return intent, nil
}

// firstJSONObject scans for the first balanced top-level {...} substring,
// ignoring braces inside JSON strings. Models often wrap the object in prose
// or code fences, so the surrounding text is discarded.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

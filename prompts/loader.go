package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PromptKey is a type for identifying specific prompts.
type PromptKey string

const (
	// KeyCommandInterpreter is the key for the voice-command interpretation prompt.
	KeyCommandInterpreter PromptKey = "CommandInterpreter"
	// KeyCoach is the key for the productivity-coach chat persona.
	KeyCoach PromptKey = "Coach"
)

// promptConfig defines the default content and filename for a prompt.
type promptConfig struct {
	defaultContent string
	filename       string
}

// promptRegistry maps a PromptKey to its configuration.
var promptRegistry = map[PromptKey]promptConfig{
	KeyCommandInterpreter: {
		defaultContent: CommandInterpreterSystemPrompt,
		filename:       "command_interpreter_prompt.txt",
	},
	KeyCoach: {
		defaultContent: CoachSystemPrompt,
		filename:       "coach_prompt.txt",
	},
}

// GetPrompt searches for a user-provided prompt file in the given templates
// directory. If found, it returns the content of that file; otherwise it
// returns the hardcoded default prompt content.
func GetPrompt(key PromptKey, templatesDir string) (string, error) {
	config, ok := promptRegistry[key]
	if !ok {
		return "", fmt.Errorf("unrecognized prompt key: %s", key)
	}

	if strings.TrimSpace(templatesDir) == "" {
		return config.defaultContent, nil
	}

	customPromptPath := filepath.Join(templatesDir, config.filename)

	if _, err := os.Stat(customPromptPath); err == nil {
		content, readErr := os.ReadFile(customPromptPath)
		if readErr != nil {
			return "", fmt.Errorf("failed to read custom prompt file at %s: %w", customPromptPath, readErr)
		}
		if strings.TrimSpace(string(content)) == "" {
			return config.defaultContent, nil
		}
		return string(content), nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check custom prompt file at %s: %w", customPromptPath, err)
	}

	return config.defaultContent, nil
}

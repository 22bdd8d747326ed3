/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/josephgoksu/goalmate/interpret"
	"github.com/josephgoksu/goalmate/llm"
	"github.com/josephgoksu/goalmate/models"
	"github.com/josephgoksu/goalmate/prompts"
	"github.com/josephgoksu/goalmate/types"
	"github.com/josephgoksu/goalmate/voice"
	"github.com/spf13/cobra"
)

var (
	doStdin    bool
	doPriority string
	doDueDate  string
)

// doCmd represents the do command
var doCmd = &cobra.Command{
	Use:   "do [instruction...]",
	Short: "Run a natural-language task command",
	Long: `Interpret a natural-language instruction and apply it to the list.

The instruction is sent to the AI model, which maps it onto one of three
actions: add, complete, or delete. Complete and delete affect every task
whose text contains the target as a case-insensitive substring.

A command that cannot be interpreted changes nothing.

Examples:
  goalmate do add buy milk
  goalmate do complete morning exercise
  goalmate do "delete the dentist appointment"
  echo "add water the plants" | goalmate do --stdin`,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)

	doCmd.Flags().BoolVar(&doStdin, "stdin", false, "read the instruction transcript from standard input")
	doCmd.Flags().StringVarP(&doPriority, "priority", "p", "", "priority applied to tasks created by an add command")
	doCmd.Flags().StringVarP(&doDueDate, "due", "d", "", "due date (YYYY-MM-DD) applied to tasks created by an add command")
}

func runDo(cmd *cobra.Command, args []string) error {
	transcript, err := captureTranscript(cmd.Context(), args)
	if err != nil {
		switch {
		case errors.Is(err, voice.ErrUnavailable):
			printStatus("Voice input is not available here. Pass the instruction as arguments or use --stdin.")
			return nil
		case errors.Is(err, voice.ErrNoSpeech):
			printStatus("No speech detected. Try again.")
			return nil
		case errors.Is(err, voice.ErrCanceled):
			printStatus("Capture stopped. No command executed.")
			return nil
		}
		return err
	}

	priority, err := models.ParsePriority(doPriority)
	if err != nil {
		return err
	}
	if doDueDate != "" {
		if _, err := time.Parse(models.DueDateLayout, doDueDate); err != nil {
			return fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", doDueDate)
		}
	}

	provider, err := NewProvider()
	if err != nil {
		return err
	}

	taskStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = taskStore.Close() }()

	systemPrompt, err := prompts.GetPrompt(prompts.KeyCommandInterpreter, GetConfig().Project.TemplatesDir)
	if err != nil {
		return err
	}

	cfg := GetConfig().LLM
	interpreter := interpret.New(provider, taskStore, systemPrompt, llm.CompletionOptions{
		Model:       cfg.ModelName,
		Temperature: cfg.CommandTemperature,
	})

	fmt.Printf("Processing: %q\n", transcript)

	outcome, err := interpreter.Interpret(cmd.Context(), transcript, interpret.AddDefaults{
		Priority: priority,
		DueDate:  doDueDate,
	})
	if err != nil {
		var statusErr *types.StatusError
		if errors.As(err, &statusErr) {
			// Interpretation failures are transient statuses, not crashes;
			// the list is unchanged.
			printStatus(statusErr.Message)
			LogError("command interpretation failed", statusErr)
			return nil
		}
		return err
	}

	printStatus(outcome.Status)
	return nil
}

// captureTranscript obtains the instruction transcript: from the arguments
// when given, from standard input with --stdin, and otherwise from the
// (absent) speech recognizer so the disabled-feature path is exercised.
func captureTranscript(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		transcript := strings.TrimSpace(strings.Join(args, " "))
		if transcript == "" {
			return "", voice.ErrNoSpeech
		}
		return transcript, nil
	}

	var source voice.Source
	if doStdin {
		source = voice.NewReaderSource(os.Stdin)
	} else {
		source = voice.Unavailable{}
	}
	recorder := voice.NewRecorder(source)
	return recorder.Capture(ctx)
}

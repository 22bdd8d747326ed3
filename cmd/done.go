/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/josephgoksu/goalmate/models"
	"github.com/josephgoksu/goalmate/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
var ErrNoTasksFound = errors.New("no tasks found matching your criteria")

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Toggle a task's completed state",
	Long: `Toggle the completed flag of a task. With no id, pick one interactively.

Toggling an id that does not exist changes nothing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = taskStore.Close() }()

	id, err := resolveTaskID(taskStore, args, func(t models.Task) bool { return !t.Completed }, "Select a task to complete")
	if err != nil {
		if errors.Is(err, ErrNoTasksFound) {
			fmt.Println("No open tasks to complete.")
			return nil
		}
		return err
	}

	task, found, err := taskStore.Toggle(id)
	if err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}
	if !found {
		fmt.Printf("No task with id %d; nothing changed.\n", id)
		return nil
	}

	if task.Completed {
		fmt.Printf("Completed task %d: %s\n", task.ID, task.Text)
	} else {
		fmt.Printf("Reopened task %d: %s\n", task.ID, task.Text)
	}
	return nil
}

// resolveTaskID returns the id from args when given, otherwise prompts the
// user to select among tasks matching filterFn.
func resolveTaskID(taskStore store.ListStore, args []string, filterFn func(models.Task) bool, label string) (int64, error) {
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid task id %q", args[0])
		}
		return id, nil
	}

	task, err := selectTaskInteractive(taskStore, filterFn, label)
	if err != nil {
		return 0, err
	}
	return task.ID, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a
// list, optionally filtered.
func selectTaskInteractive(taskStore store.ListStore, filterFn func(models.Task) bool, label string) (models.Task, error) {
	all, err := taskStore.Tasks()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to list tasks for selection: %w", err)
	}

	tasks := make([]models.Task, 0, len(all))
	for _, t := range all {
		if filterFn == nil || filterFn(t) {
			tasks = append(tasks, t)
		}
	}
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Text | cyan }} (ID: {{ .ID }}, Priority: {{ .Priority }})`,
		Inactive: `  {{ .Text | faint }} (ID: {{ .ID }}, Priority: {{ .Priority }})`,
		Selected: `{{ "✔" | green }} {{ .Text | faint }} (ID: {{ .ID }})`,
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err // includes promptui.ErrInterrupt
	}

	return tasks[i], nil
}

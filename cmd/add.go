/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/goalmate/models"
	"github.com/spf13/cobra"
)

var (
	addPriority string
	addDueDate  string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task to the list",
	Long: `Add a task to the selected list.

Examples:
  goalmate add "Buy milk"
  goalmate add "Finish the report" --priority high --due 2025-06-01
  goalmate add "Water the plants" --list todo`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "task priority (low, medium, high; default medium)")
	addCmd.Flags().StringVarP(&addDueDate, "due", "d", "", "due date in YYYY-MM-DD form")
}

func runAdd(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("task text cannot be empty")
	}

	priority, err := models.ParsePriority(addPriority)
	if err != nil {
		return err
	}

	if addDueDate != "" {
		if _, err := time.Parse(models.DueDateLayout, addDueDate); err != nil {
			return fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", addDueDate)
		}
	}

	taskStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = taskStore.Close() }()

	task, err := taskStore.Add(text, priority, addDueDate)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task %d: %s\n", task.ID, task.Text)
	return nil
}

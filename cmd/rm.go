/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Long:    `Delete a task by id, or pick one interactively when no id is given.`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = taskStore.Close() }()

	id, err := resolveTaskID(taskStore, args, nil, "Select a task to delete")
	if err != nil {
		if errors.Is(err, ErrNoTasksFound) {
			fmt.Println("No tasks to delete.")
			return nil
		}
		return err
	}

	found, err := taskStore.Remove(id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !found {
		fmt.Printf("No task with id %d; nothing changed.\n", id)
		return nil
	}

	fmt.Printf("Deleted task %d.\n", id)
	return nil
}

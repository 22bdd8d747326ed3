/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/josephgoksu/goalmate/query"
	"github.com/spf13/cobra"
)

var (
	listFilter string
	listSearch string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the task list",
	Long: `Show the selected task list, sorted for display: open tasks first,
then by priority, then by due date (undated tasks after dated ones), then by
creation time. The stored file keeps insertion order; sorting never rewrites it.

Examples:
  goalmate list
  goalmate list --filter active
  goalmate list --search milk --list todo`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "filter by completion (all, active, completed)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "show only tasks containing this text")
}

func runList(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = taskStore.Close() }()

	tasks, err := taskStore.Tasks()
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	today := time.Now()
	view := query.Filter(tasks, query.ParseFilterMode(listFilter))
	view = query.Search(view, listSearch)
	view = query.Sort(view)

	if len(view) == 0 {
		fmt.Println("No tasks found. Add some tasks to get started!")
		return nil
	}

	for _, task := range view {
		fmt.Println(renderTaskLine(task, today))
	}

	fmt.Println()
	fmt.Println(renderSummary(query.Aggregate(tasks, today)))
	return nil
}

/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	clearForce  bool
	clearBackup bool
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all completed tasks",
	Long: `Remove every completed task from the selected list. Open tasks keep
their insertion order.

Safety features:
- Interactive confirmation (unless --force is used)
- Optional timestamped backup of the data file (--backup)

Examples:
  goalmate clear
  goalmate clear --force
  goalmate clear --backup --list todo`,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
	clearCmd.Flags().BoolVarP(&clearBackup, "backup", "b", false, "write a backup of the data file before clearing")
}

func runClear(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = taskStore.Close() }()

	tasks, err := taskStore.Tasks()
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	if completed == 0 {
		fmt.Println("No completed tasks to clear.")
		return nil
	}

	if !clearForce {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Clear %d completed task(s)", completed),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Println("Clear operation cancelled.")
			return nil
		}
	}

	if clearBackup {
		listFilePath, err := GetListFilePath()
		if err != nil {
			return err
		}
		backupPath := listFilePath + ".backup-" + time.Now().Format("20060102-150405")
		if err := taskStore.Backup(backupPath); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}
		fmt.Printf("Backup written to %s\n", filepath.Base(backupPath))
	}

	removed, err := taskStore.ClearCompleted()
	if err != nil {
		return fmt.Errorf("failed to clear completed tasks: %w", err)
	}

	fmt.Printf("Cleared %d completed task(s).\n", removed)
	return nil
}

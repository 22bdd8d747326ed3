/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/josephgoksu/goalmate/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// listName selects which logical list a command operates on.
	listName string
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "goalmate",
	Short: "GoalMate keeps your tasks and goals on track from the terminal.",
	Long: `GoalMate is a local-first productivity companion.

It manages two task lists (a smart list with voice-style commands and a plain
todo list), interprets natural-language instructions through an AI model, and
offers an AI productivity coach for open-ended planning advice.

All data lives in local files under your GoalMate directory; nothing is
synced or shared.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.goalmate.yaml or ./.goalmate.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&listName, "list", "l", "smart", "task list to operate on (smart or todo)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetListFilePath returns the full path to the selected list's data file.
func GetListFilePath() (string, error) {
	config := GetConfig()
	switch listName {
	case "smart", "":
		return filepath.Join(config.Project.RootDir, config.Data.SmartFile), nil
	case "todo":
		return filepath.Join(config.Project.RootDir, config.Data.TodoFile), nil
	default:
		return "", fmt.Errorf("unknown list %q (expected smart or todo)", listName)
	}
}

// GetPlannerFilePath returns the full path to the saved planner transcript.
func GetPlannerFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Data.PlannerFile)
}

// GetStore initializes and returns the store for the selected list.
// Each command re-derives all state from the data file on startup.
func GetStore() (store.ListStore, error) {
	s := store.NewFileListStore()
	config := GetConfig()

	listFilePath, err := GetListFilePath()
	if err != nil {
		return nil, err
	}

	err = s.Initialize(map[string]string{
		"dataFile":       listFilePath,
		"dataFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", listFilePath, err)
	}
	return s, nil
}

/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/goalmate/chat"
	"github.com/josephgoksu/goalmate/llm"
	"github.com/josephgoksu/goalmate/prompts"
	"github.com/spf13/cobra"
)

var planReset bool

var (
	youStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	coachStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Chat with the AI productivity coach",
	Long: `Start an interactive session with GoalMate, the AI productivity coach.

Share a goal and get a structured, encouraging plan. The conversation is
saved locally and resumes where you left off; --reset starts over. The coach
never modifies your task lists.

Type your message and press Enter; an empty line or Ctrl+D ends the session.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().BoolVar(&planReset, "reset", false, "discard the saved conversation and start fresh")
}

func runPlan(cmd *cobra.Command, args []string) error {
	provider, err := NewProvider()
	if err != nil {
		return err
	}

	persona, err := prompts.GetPrompt(prompts.KeyCoach, GetConfig().Project.TemplatesDir)
	if err != nil {
		return err
	}

	cfg := GetConfig().LLM
	session := chat.NewSession(provider, persona, llm.CompletionOptions{
		Model:       cfg.ModelName,
		Temperature: cfg.CoachTemperature,
		MaxTokens:   cfg.CoachMaxTokens,
	}, GetPlannerFilePath())

	if planReset {
		session.Reset()
	}

	if history := session.Messages(); len(history) > 0 {
		fmt.Printf("Resuming your conversation (%d messages). Use --reset to start over.\n\n", len(history))
		for _, msg := range history {
			printTurn(msg)
		}
	} else {
		fmt.Println("Welcome to GoalMate. I'm your AI productivity coach. How can I help you today?")
		fmt.Println()
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(youStyle.Render("You: "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			break
		}

		reply, err := session.Send(cmd.Context(), input)
		if err != nil {
			// The fallback reply is already part of the transcript; show it
			// and keep the session alive.
			LogError("advice request failed", err)
		}
		printTurn(reply)
	}

	fmt.Println("\nGood luck out there!")
	return scanner.Err()
}

func printTurn(msg llm.Message) {
	label := youStyle.Render("You: ")
	if msg.Role == "assistant" {
		label = coachStyle.Render("Coach: ")
	}
	fmt.Println(label + msg.Content)
	fmt.Println()
}

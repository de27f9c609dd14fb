package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mdrahmanz/curator/ai"
	"github.com/mdrahmanz/curator/config"
)

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Generative assistants",
	Long: `Run the Gemini-backed assistants from the command line. Requires
GEMINI_API_KEY.

Examples:
  curator assist schema posts "a blog with title, body and publish date"
  curator assist brainstorm "topics for a Go infrastructure blog"
  cat draft.md | curator assist summarize
  cat draft.md | curator assist write "tighten the intro"`,
}

func openAssistant(ctx context.Context) *ai.Assistant {
	cfg := config.Load()
	assistant, err := ai.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
	return assistant
}

// readStdin slurps piped input for the text-consuming assistants.
func readStdin() string {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Println("❌ Failed to read stdin:", err)
		os.Exit(1)
	}
	return string(data)
}

var assistSchemaCmd = &cobra.Command{
	Use:   "schema <collection> <description>",
	Short: "Draft a schema from a description",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		assistant := openAssistant(ctx)

		def, err := assistant.SuggestSchema(ctx, args[0], strings.Join(args[1:], " "))
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		if def.Icon != "" {
			fmt.Printf("Icon: %s\n", def.Icon)
		}
		fmt.Print(def.Source())
	},
}

var assistSummarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize text from stdin",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		assistant := openAssistant(ctx)

		summary, err := assistant.Summarize(ctx, readStdin())
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Println(summary)
	},
}

var assistBrainstormCmd = &cobra.Command{
	Use:   "brainstorm <topic>",
	Short: "Brainstorm content ideas",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		assistant := openAssistant(ctx)

		ideas, err := assistant.Brainstorm(ctx, strings.Join(args, " "))
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		for i, idea := range ideas {
			fmt.Printf("%d. %s\n", i+1, idea)
		}
	},
}

var assistWriteCmd = &cobra.Command{
	Use:   "write <instruction>",
	Short: "Rewrite a draft from stdin per an instruction",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		assistant := openAssistant(ctx)

		text, err := assistant.WritingAssist(ctx, strings.Join(args, " "), readStdin())
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		fmt.Println(text)
	},
}

func init() {
	rootCmd.AddCommand(assistCmd)
	assistCmd.AddCommand(assistSchemaCmd)
	assistCmd.AddCommand(assistSummarizeCmd)
	assistCmd.AddCommand(assistBrainstormCmd)
	assistCmd.AddCommand(assistWriteCmd)
}

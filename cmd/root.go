package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/eduval/eduval/internal/app"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "eduval",
	Short: "Classroom assessment instruments, by hand or with AI",
	Long: "eduval: author rubrics, checklists, rating scales, observation guides\n" +
		"and exams, generate them with an AI model and score them as you grade.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd, true)
		if err != nil {
			return err
		}
		defer d.Close()

		wb := d.workbench(cmd.Context())
		return app.Run(cmd.Context(), wb, d.cat, d.log)
	},
}

// Execute runs the root command; ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ./eduval.yaml or ~/.config/eduval/eduval.yaml)")
	pf.String("lang", "", "Language for prompts and labels (es, en)")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-format", "", "Log format (console, json)")
	pf.String("log-file", "", "Write logs to this file")
	pf.String("db", "", "Path to the SQLite LLM audit log (overrides EDUVAL_DB)")
	pf.String("provider", "", "LLM provider (gemini, openai, anthropic, openrouter, mock)")
	pf.String("model", "", "Model for the selected provider")
	pf.Int("max-attempts", 0, "Attempts per generation, including the first")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

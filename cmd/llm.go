package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/eduval/eduval/internal/llm"
	"github.com/eduval/eduval/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the audit log of AI generations",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent AI requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, done, err := openAuditLog(cmd)
		if err != nil {
			return err
		}
		defer done()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No AI requests recorded.")
			return nil
		}

		rows := make([][]string, 0, len(events))
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			rows = append(rows, []string{
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				ok,
			})
		}
		printTable(out, []string{"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK"}, rows)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and reply of one AI request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, done, err := openAuditLog(cmd)
		if err != nil {
			return err
		}
		defer done()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		fields := [][2]string{
			{"ID", strconv.Itoa(e.ID)},
			{"Time", e.Timestamp.Local().Format("2006-01-02 15:04:05")},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Success", strconv.FormatBool(e.Success)},
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		for _, f := range fields {
			fmt.Fprintf(out, "%-10s %s\n", f[0]+":", f[1])
		}

		section(out, "REQUEST", e.RequestBody)
		section(out, "REPLY", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, done, err := openAuditLog(cmd)
		if err != nil {
			return err
		}
		defer done()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No AI usage recorded yet.")
			return nil
		}

		var calls, in, outTok int
		rows := make([][]string, 0, len(byPurpose)+1)
		for _, u := range byPurpose {
			rows = append(rows, []string{
				u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10),
			})
			calls += u.Calls
			in += u.InputTokens
			outTok += u.OutputTokens
		}
		rows = append(rows, []string{"TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), ""})
		fmt.Fprintln(out, "Usage by purpose")
		printTable(out, []string{"Purpose", "Calls", "Input", "Output", "Avg ms"}, rows)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		var total float64
		var unknown []string
		rows = rows[:0]
		for _, u := range byModel {
			cost := "?"
			if c := llm.LookupCost(u.Model); c != nil {
				usd := c.Cost(u.InputTokens, u.OutputTokens)
				total += usd
				cost = formatCost(usd)
			} else {
				unknown = append(unknown, u.Model)
			}
			rows = append(rows, []string{
				truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), cost,
			})
		}
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		rows = append(rows, []string{label, "", "", "", formatCost(total)})

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated cost (USD)")
		printTable(out, []string{"Model", "Calls", "Input", "Output", "Cost"}, rows)
		if len(unknown) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.String())
}

func section(w io.Writer, title, body string) {
	sep := strings.Repeat("─", 60)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", sep, title, sep, body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

// openAuditLog opens the configured audit log for reading.
func openAuditLog(cmd *cobra.Command) (*store.Store, func(), error) {
	d, err := loadDeps(cmd, false)
	if err != nil {
		return nil, nil, err
	}
	if d.cfg.DB == "" {
		d.Close()
		return nil, nil, fmt.Errorf("the AI audit log is disabled (db is empty)")
	}
	s, err := d.openStore()
	if err != nil {
		d.Close()
		return nil, nil, err
	}
	return s, d.Close, nil
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. generate-rubric, generate-exam)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

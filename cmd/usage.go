package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviz/internal/embedding"
	"github.com/abhisek/interviz/internal/store"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show embedding usage by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		usage, err := s.EventRepo().EmbeddingUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, "No embedding usage recorded yet.")
			return nil
		}

		fmt.Fprintln(out, "Usage by Model")
		fmt.Fprintln(out, strings.Repeat("─", 76))
		fmt.Fprintf(out, "%-28s  %6s  %8s  %8s  %10s  %8s\n",
			"Model", "Calls", "Failed", "Inputs", "Tokens", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 76))

		var total store.EmbeddingModelUsage
		for _, u := range usage {
			fmt.Fprintf(out, "%-28s  %6d  %8d  %8d  %10d  %8d\n",
				truncate(u.Model, 28), u.Calls, u.Failures, u.Inputs, u.InputTokens, u.AvgLatencyMs)
			total.Calls += u.Calls
			total.Failures += u.Failures
			total.Inputs += u.Inputs
			total.InputTokens += u.InputTokens
		}
		fmt.Fprintln(out, strings.Repeat("─", 76))
		fmt.Fprintf(out, "%-28s  %6d  %8d  %8d  %10d\n",
			"TOTAL", total.Calls, total.Failures, total.Inputs, total.InputTokens)

		var cost float64
		var unknown []string
		for _, u := range usage {
			if c := embedding.LookupCost(u.Model); c != nil {
				cost += c.Cost(u.InputTokens)
			} else {
				unknown = append(unknown, u.Model)
			}
		}
		fmt.Fprintf(out, "\nEstimated cost: $%.4f\n", cost)
		if len(unknown) > 0 {
			fmt.Fprintf(out, "Pricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}

		recent, err := s.EventRepo().QueryEmbeddingRequests(ctx, store.QueryOpts{Limit: 5})
		if err != nil {
			return fmt.Errorf("query requests: %w", err)
		}
		var failures []store.EmbeddingRequestRecord
		for _, r := range recent {
			if !r.Success {
				failures = append(failures, r)
			}
		}
		if len(failures) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Recent failures")
			for _, r := range failures {
				fmt.Fprintf(out, "  %s  %-10s  %s\n",
					r.Timestamp.Local().Format("2006-01-02 15:04:05"), r.Purpose, r.ErrorMessage)
			}
		}
		return nil
	},
}

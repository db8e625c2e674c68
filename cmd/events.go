package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviz/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recent answer evaluations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		user, _ := cmd.Flags().GetString("user")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryEvaluations(cmd.Context(), store.QueryOpts{Limit: limit, UserID: user})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No evaluations found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-12s  %-14s  %-11s  %5s  %4s  %s\n",
			"ID", "Timestamp", "User", "Concept", "Gate", "Score", "Rec", "Question")
		fmt.Fprintln(out, strings.Repeat("─", 110))
		for _, e := range events {
			rec := "✓"
			if !e.Recorded {
				rec = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-12s  %-14s  %-11s  %5.1f  %4s  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.UserID, 12),
				truncate(e.Concept, 14),
				e.Gate,
				e.Score,
				rec,
				truncate(e.Question, 40),
			)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().Int("limit", 20, "maximum number of events to show (0 = all)")
	eventsCmd.Flags().String("user", "", "only show events for this user id")
}

// openStore opens the event log for the read-only inspection commands.
func openStore() (*store.Store, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

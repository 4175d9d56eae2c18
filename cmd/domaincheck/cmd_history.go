package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"domaincheck/internal/store"
)

var historyFlags struct {
	limit int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent cached check results",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "Maximum number of results to list")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if cfg.Cache.Path == "" {
		return fmt.Errorf("no cache configured (set cache.path in the config file)")
	}

	cache, err := store.Open(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("open cache store: %w", err)
	}
	defer cache.Close()

	checks, err := cache.RecentChecks(historyFlags.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(checks) == 0 {
		fmt.Fprintln(out, "No checks recorded yet.")
		return nil
	}
	for _, rec := range checks {
		fmt.Fprintf(out, "%s  %-30s %-10s", rec.CheckedAt, rec.Domain, rec.Status)
		if rec.Registrar != "" {
			fmt.Fprintf(out, "  %s", rec.Registrar)
		}
		fmt.Fprintln(out)
	}
	return nil
}

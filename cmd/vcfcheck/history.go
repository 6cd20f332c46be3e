package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vcfcheck/internal/duckdb"
	"github.com/inodb/vcfcheck/internal/output"
)

var errNoCache = errors.New("no result cache configured (set cache.db or --cache-db)")

func newHistoryCmd() *cobra.Command {
	var (
		limit     int
		clearRuns bool
	)

	cmd := &cobra.Command{
		Use:   "history [file]",
		Short: "List recorded validation runs",
		Long:  "List validation runs recorded in the result cache, newest first.",
		Example: `  vcfcheck history
  vcfcheck history --limit 5 input.vcf.gz
  vcfcheck history --clear`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runHistory(cmd, path, limit, clearRuns)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 = all)")
	cmd.Flags().BoolVar(&clearRuns, "clear", false, "Delete all recorded runs")

	return cmd
}

func runHistory(cmd *cobra.Command, path string, limit int, clearRuns bool) error {
	dbPath := viper.GetString("cache.db")
	if dbPath == "" {
		return errNoCache
	}

	store, err := duckdb.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening result cache: %w", err)
	}
	defer store.Close()

	if clearRuns {
		if err := store.ClearRuns(); err != nil {
			return fmt.Errorf("clearing runs: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared validation runs in %s\n", dbPath)
		return nil
	}

	if path != "" {
		// Runs are recorded under absolute paths.
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	runs, err := store.History(path, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No validation runs recorded.")
		return nil
	}
	return output.WriteHistory(cmd.OutOrStdout(), runs)
}

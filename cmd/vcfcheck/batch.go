package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vcfcheck/internal/output"
	"github.com/inodb/vcfcheck/internal/validate"
)

func newBatchCmd(flags *globalFlags) *cobra.Command {
	var failuresOnly bool

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Validate many VCF files in parallel",
		Long: `Validate many VCF files in parallel and print one row per file.

Files are independent, so each worker validates a whole file. Rows are
printed in argument order. Exits 1 if any file is invalid.`,
		Example: `  vcfcheck batch *.vcf.gz
  vcfcheck batch --workers 4 --failures-only data/*.vcf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, flags.verbose, failuresOnly)
		},
	}

	cmd.Flags().Int("workers", 0, "Number of parallel workers (0 = all CPUs)")
	cmd.Flags().BoolVar(&failuresOnly, "failures-only", false, "Only print rows for invalid files")
	viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runBatch(cmd *cobra.Command, paths []string, verbose, failuresOnly bool) error {
	s, err := openSession(verbose)
	if err != nil {
		return err
	}
	defer s.Close()

	workers := viper.GetInt("workers")
	s.logger.Debug("validating files", zap.Int("files", len(paths)), zap.Int("workers", workers))

	results := validate.ValidateAll(s.validator, paths, workers)

	report := output.NewReportWriter(cmd.OutOrStdout(), !failuresOnly)
	if err := report.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, res := range results {
		s.observe(res)
		if err := report.WriteResult(res); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	if err := report.Flush(); err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}
	report.WriteSummary(cmd.ErrOrStderr())

	total, _, invalid := report.Summary()
	if invalid > 0 {
		return fmt.Errorf("%d of %d files invalid", invalid, total)
	}
	return nil
}

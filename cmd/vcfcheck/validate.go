package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a single VCF file",
		Long: `Validate a single VCF file (plain, gzip, or BGZF; '-' for stdin).

Prints "VCF file is valid." and exits 0 on success. On the first rejected
line, prints the line number and reason and exits 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], flags.verbose)
		},
	}
}

func runValidate(cmd *cobra.Command, path string, verbose bool) error {
	s, err := openSession(verbose)
	if err != nil {
		return err
	}
	defer s.Close()

	res := s.validator.ValidateFile(path)
	s.observe(res)
	if !res.Valid() {
		return res.Err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "VCF file is valid.")
	return nil
}

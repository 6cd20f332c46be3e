// Package main provides the vcfcheck command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const configName = ".vcfcheck.yaml"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

// globalFlags are the persistent flags shared by all commands.
type globalFlags struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "vcfcheck <file>",
		Short: "Validate Variant Call Format files",
		Long: `Validate that a file conforms to the Variant Call Format (VCF).

Validation stops at the first rejected line. Compressed input (gzip or BGZF)
is decoded transparently. Use '-' to read from stdin.`,
		Example: `  vcfcheck input.vcf
  vcfcheck validate input.vcf.gz
  vcfcheck batch *.vcf.gz
  cat input.vcf | vcfcheck -`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(flags.configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], flags.verbose)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "Config file (default: ~/"+configName+")")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug messages to stderr")
	pf.Bool("check-columns", false, "Require the standard column names on the #CHROM line")
	pf.String("cache-db", "", "DuckDB file recording validation runs (empty disables the result cache)")
	pf.String("metrics-file", "", "Write Prometheus metrics to this textfile")

	viper.BindPFlag("check_columns", pf.Lookup("check-columns"))
	viper.BindPFlag("cache.db", pf.Lookup("cache-db"))
	viper.BindPFlag("metrics.file", pf.Lookup("metrics-file"))

	root.AddCommand(newValidateCmd(&flags))
	root.AddCommand(newBatchCmd(&flags))
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// initConfig loads the config file and VCFCHECK_* environment variables.
// A missing default config file is not an error; a missing explicit one is.
func initConfig(configFile string) error {
	viper.SetDefault("workers", 0)
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("check_columns", false)
	viper.SetDefault("cache.db", "")
	viper.SetDefault("metrics.file", "")

	viper.SetEnvPrefix("VCFCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path := filepath.Join(home, configName)
		if _, err := os.Stat(path); err != nil {
			return nil
		}
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// newLogger builds a console logger on stderr at the configured level.
func newLogger(verbose bool) (*zap.Logger, error) {
	level := zapcore.DebugLevel
	if !verbose {
		var err error
		level, err = zapcore.ParseLevel(viper.GetString("log.level"))
		if err != nil {
			return nil, fmt.Errorf("invalid log.level: %w", err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil

	return cfg.Build()
}

// Package cmd provides CLI commands for journalfmt.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/journalfmt/pkg/config"
	"github.com/pigeonworks-llc/journalfmt/pkg/pathutil"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "journalfmt",
	Short: "Parse, check and format plain-text accounting journals",
	Long: `journalfmt reads ledger-style plain-text journals and renders them
back in a canonical layout.

It supports:
- Formatting journal files in place or checking that they are formatted
- Reporting parse errors with line and column
- Appending transactions to monthly journal files
- Keeping a SQLite history of commodity prices (P directives)

Example:
  journalfmt fmt --write 2024/2024-01.journal
  journalfmt check
  journalfmt prices import`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(pricesCmd)
	rootCmd.AddCommand(statsCmd)
}

// loadConfig loads and validates the configuration and builds the path resolver.
func loadConfig(required ...[]string) (*config.Config, *pathutil.PathResolver) {
	slog.Debug("Loading configuration", "config", cfgFile)

	cfg, err := config.Load(cfgFile)
	exitOnError(err, "failed to load configuration")

	if cfg.Debug && !debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	required = append(required, []string{"journal", "root"})
	if err := cfg.Validate(required...); err != nil {
		exitOnError(err, "invalid configuration")
	}

	pathResolver := pathutil.New(pathutil.Config{
		JournalRoot:  cfg.Journal.Root,
		DatabasePath: cfg.Journal.DBPath,
	})
	return cfg, pathResolver
}

// resolveFiles returns the files named on the command line, the month file
// for month, or every journal file under the root.
func resolveFiles(args []string, month string, pathResolver *pathutil.PathResolver) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if month != "" {
		path, err := pathResolver.GetMonthFilePath(month)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
	return pathResolver.ListJournalFiles()
}

// exitOnError logs err and exits with status 1.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/journalfmt/pkg/parser"
	"github.com/pigeonworks-llc/journalfmt/pkg/serializer"
)

var (
	fmtWrite bool
	fmtCheck bool
	fmtMonth string
)

// fmtCmd represents the fmt command.
var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Render journal files in canonical form",
	Long: `Parse journal files and render them with the configured format settings.

Without file arguments, --month selects one monthly file and otherwise every
journal file under JOURNAL_ROOT is formatted.

By default the formatted text is written to stdout. --write replaces files
that change; --check lists them and exits with status 1.

Example:
  journalfmt fmt 2024/2024-01.journal
  journalfmt fmt --month 2024-01 --write
  journalfmt fmt --check`,
	Run: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the result back to the files")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "report files that are not formatted")
	fmtCmd.Flags().StringVar(&fmtMonth, "month", "", "format the monthly file for YYYY-MM")
	fmtCmd.MarkFlagsMutuallyExclusive("write", "check")
}

func runFmt(cmd *cobra.Command, args []string) {
	cfg, pathResolver := loadConfig()
	settings := cfg.SerializerSettings()

	files, err := resolveFiles(args, fmtMonth, pathResolver)
	exitOnError(err, "failed to resolve journal files")
	slog.Debug("Formatting files", "count", len(files), "write", fmtWrite, "check", fmtCheck)

	var unformatted int
	for _, path := range files {
		src, err := os.ReadFile(path)
		exitOnError(err, "failed to read journal file")

		formatted, err := formatSource(string(src), settings)
		if err != nil {
			exitOnError(fmt.Errorf("%s:%w", path, err), "failed to parse journal file")
		}
		changed := formatted != string(src)

		switch {
		case fmtCheck:
			if changed {
				unformatted++
				fmt.Println(path)
			}
		case fmtWrite:
			if !changed {
				continue
			}
			err := os.WriteFile(path, []byte(formatted), 0644)
			exitOnError(err, "failed to write journal file")
			slog.Info("Formatted", "file", path)
		default:
			fmt.Print(formatted)
		}
	}

	if unformatted > 0 {
		slog.Warn("Files are not formatted", "count", unformatted)
		os.Exit(1)
	}
}

// formatSource parses src and renders it back with settings.
func formatSource(src string, settings serializer.Settings) (string, error) {
	doc, err := parser.ParseDocument(src)
	if err != nil {
		return "", err
	}
	return serializer.FormatDocument(doc, settings), nil
}

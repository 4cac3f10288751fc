package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/journalfmt/pkg/parser"
)

var checkMonth string

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Report parse errors in journal files",
	Long: `Parse journal files without rewriting them and report every file that
fails as file:line:column: message. Exits with status 1 if any file fails.

Example:
  journalfmt check
  journalfmt check --month 2024-01`,
	Run: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkMonth, "month", "", "check the monthly file for YYYY-MM")
}

func runCheck(cmd *cobra.Command, args []string) {
	_, pathResolver := loadConfig()

	files, err := resolveFiles(args, checkMonth, pathResolver)
	exitOnError(err, "failed to resolve journal files")

	failed := checkFiles(files, os.Stdout)
	slog.Info("Checked journal files", "files", len(files), "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// checkFiles parses each file, writes one line per failure to w and returns the failure count.
func checkFiles(files []string, w io.Writer) int {
	var failed int
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s: %v\n", path, err)
			continue
		}
		if _, err := parser.ParseDocument(string(src)); err != nil {
			failed++
			fmt.Fprintf(w, "%s:%v\n", path, err)
			continue
		}
		slog.Debug("File parsed", "file", path)
	}
	return failed
}

package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
	"github.com/pigeonworks-llc/journalfmt/pkg/journalfile"
	"github.com/pigeonworks-llc/journalfmt/pkg/parser"
	"github.com/pigeonworks-llc/journalfmt/pkg/pathutil"
	"github.com/pigeonworks-llc/journalfmt/pkg/serializer"
)

type addOptions struct {
	month       string
	date        string
	effective   string
	status      string
	code        string
	description string
	comment     string
	postings    []string
	dryRun      bool
}

var addOpts addOptions

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a transaction to a monthly journal file",
	Long: `Build a transaction from flags and append it to the monthly file
<JOURNAL_ROOT>/<YYYY>/<YYYY-MM>.journal, creating the file if needed.

Each --posting is one posting line, e.g. "Expenses:Food  12.50 EUR".
The month defaults to the month of --date.

Example:
  journalfmt add --date 2024-01-15 --status '*' --description "Grocery store" \
    --posting "Expenses:Food  12.50 EUR" --posting "Assets:Cash"`,
	Run: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addOpts.month, "month", "", "monthly file YYYY-MM (default: month of --date)")
	addCmd.Flags().StringVar(&addOpts.date, "date", "", "transaction date YYYY-MM-DD (required)")
	addCmd.Flags().StringVar(&addOpts.effective, "effective", "", "effective date YYYY-MM-DD")
	addCmd.Flags().StringVar(&addOpts.status, "status", "", "status: ! (pending) or * (cleared)")
	addCmd.Flags().StringVar(&addOpts.code, "code", "", "transaction code")
	addCmd.Flags().StringVar(&addOpts.description, "description", "", "transaction description (required)")
	addCmd.Flags().StringVar(&addOpts.comment, "comment", "", "comment line written above the transaction")
	addCmd.Flags().StringArrayVar(&addOpts.postings, "posting", nil, "posting line (repeatable)")
	addCmd.Flags().BoolVar(&addOpts.dryRun, "dry-run", false, "print the transaction instead of writing it")

	addCmd.MarkFlagRequired("date")
	addCmd.MarkFlagRequired("description")
}

func runAdd(cmd *cobra.Command, args []string) {
	cfg, pathResolver := loadConfig()
	settings := cfg.SerializerSettings()

	tx, err := buildTransaction(addOpts)
	exitOnError(err, "invalid transaction")

	month := addOpts.month
	if month == "" {
		month = pathutil.YearMonth(tx.Date)
	}

	if addOpts.dryRun {
		fmt.Println(serializer.FormatTransaction(tx, settings))
		return
	}

	repo := journalfile.NewFileSystemRepository(pathResolver, settings)
	err = repo.AppendTransaction(month, tx, addOpts.comment)
	exitOnError(err, "failed to append transaction")

	slog.Info("Transaction added", "month", month, "date", serializer.FormatDate(tx.Date, settings), "postings", len(tx.Postings))
}

// buildTransaction turns the add flags into a transaction.
func buildTransaction(opts addOptions) (journal.Transaction, error) {
	var tx journal.Transaction

	d, err := parseWholeDate(opts.date)
	if err != nil {
		return tx, fmt.Errorf("invalid --date: %w", err)
	}
	tx.Date = d

	if opts.effective != "" {
		eff, err := parseWholeDate(opts.effective)
		if err != nil {
			return tx, fmt.Errorf("invalid --effective: %w", err)
		}
		tx.EffectiveDate = &eff
	}

	switch opts.status {
	case "":
	case "!":
		tx.Status = journal.StatusPending
	case "*":
		tx.Status = journal.StatusCleared
	default:
		return tx, fmt.Errorf("invalid --status %q: expected ! or *", opts.status)
	}

	if strings.ContainsAny(opts.code, ")\n") {
		return tx, fmt.Errorf("invalid --code %q", opts.code)
	}
	tx.Code = opts.code

	tx.Description = strings.TrimSpace(opts.description)
	if tx.Description == "" || strings.ContainsAny(tx.Description, ";\n") {
		return tx, fmt.Errorf("invalid --description %q", opts.description)
	}

	for i, line := range opts.postings {
		p, err := parser.ParsePosting(line)
		if err != nil {
			return tx, fmt.Errorf("invalid --posting #%d %q: %w", i+1, line, err)
		}
		tx.Postings = append(tx.Postings, p)
	}

	return tx, nil
}

// parseWholeDate parses a date that must make up the whole string.
func parseWholeDate(s string) (time.Time, error) {
	d, rest, err := parser.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if rest != "" {
		return time.Time{}, fmt.Errorf("unexpected %q after date", rest)
	}
	return d, nil
}

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/journalfmt/pkg/db"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display journal and price history statistics",
	Long: `Display statistics about the journal root and the price history.

Shows:
- Number of journal files under JOURNAL_ROOT
- Number of recorded prices and commodities
- Date range of recorded prices
- Last import timestamp

Example:
  journalfmt stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	_, pathResolver := loadConfig()

	files, err := pathResolver.ListJournalFiles()
	exitOnError(err, "failed to list journal files")

	dbPath := pathResolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	stats, err := db.NewPriceHistory(conn).GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Journal Statistics ===")
	fmt.Printf("Journal files:      %d\n", len(files))
	fmt.Printf("Recorded prices:    %d\n", stats.TotalPrices)
	fmt.Printf("Commodities:        %d\n", stats.TotalCommodities)

	if stats.FirstPrice.Valid {
		fmt.Printf("Price range:        %s .. %s\n", stats.FirstPrice.String, stats.LastPrice.String)
	} else {
		fmt.Printf("Price range:        (none)\n")
	}
	if stats.LastImport.Valid {
		fmt.Printf("Last import:        %s\n", stats.LastImport.String)
	} else {
		fmt.Printf("Last import:        (never)\n")
	}

	fmt.Println()

	slog.Info("Statistics displayed successfully")
}

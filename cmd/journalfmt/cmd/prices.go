package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/journalfmt/pkg/db"
	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
	"github.com/pigeonworks-llc/journalfmt/pkg/journalfile"
	"github.com/pigeonworks-llc/journalfmt/pkg/serializer"
)

var pricesMonth string

// pricesCmd groups the price history commands.
var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Manage the commodity price history",
	Long: `Store P directives from journal files in SQLite and query them.

Example:
  journalfmt prices import
  journalfmt prices list mBH`,
}

var pricesImportCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import P directives from journal files",
	Run:   runPricesImport,
}

var pricesListCmd = &cobra.Command{
	Use:   "list COMMODITY",
	Short: "List the recorded prices of a commodity",
	Args:  cobra.ExactArgs(1),
	Run:   runPricesList,
}

func init() {
	pricesImportCmd.Flags().StringVar(&pricesMonth, "month", "", "import from the monthly file for YYYY-MM")

	pricesCmd.AddCommand(pricesImportCmd)
	pricesCmd.AddCommand(pricesListCmd)
}

func runPricesImport(cmd *cobra.Command, args []string) {
	_, pathResolver := loadConfig()

	files, err := resolveFiles(args, pricesMonth, pathResolver)
	exitOnError(err, "failed to resolve journal files")

	dbPath := pathResolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)
	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	history := db.NewPriceHistory(conn)

	var total int
	for _, path := range files {
		doc, err := journalfile.ReadFile(path)
		exitOnError(err, "failed to read journal file")

		prices := commodityPrices(doc)
		if len(prices) == 0 {
			continue
		}
		err = history.RecordPrices(prices, path)
		exitOnError(err, "failed to record prices")

		slog.Info("Imported prices", "file", path, "count", len(prices))
		total += len(prices)
	}

	err = history.SetMetadata(db.MetadataLastImport, time.Now().UTC().Format(time.RFC3339))
	exitOnError(err, "failed to update metadata")

	fmt.Printf("Imported %d prices from %d files\n", total, len(files))
}

// commodityPrices returns the P directives of doc in order.
func commodityPrices(doc journal.Document) []journal.CommodityPrice {
	var prices []journal.CommodityPrice
	for _, item := range doc.Items {
		if cp, ok := item.(journal.CommodityPrice); ok {
			prices = append(prices, cp)
		}
	}
	return prices
}

func runPricesList(cmd *cobra.Command, args []string) {
	cfg, pathResolver := loadConfig()
	settings := cfg.SerializerSettings()

	conn, err := db.Open(pathResolver.GetDatabasePath())
	exitOnError(err, "failed to open database")
	defer conn.Close()

	records, err := db.NewPriceHistory(conn).GetPrices(args[0])
	exitOnError(err, "failed to get prices")

	if len(records) == 0 {
		slog.Warn("No prices recorded", "commodity", args[0])
		return
	}
	for _, r := range records {
		fmt.Println(serializer.FormatCommodityPrice(r.Price, settings))
	}
}

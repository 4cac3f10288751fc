package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
)

const priceTimeLayout = "2006-01-02 15:04:05"

// PriceRecord is a stored commodity price.
type PriceRecord struct {
	ID         int64
	Price      journal.CommodityPrice
	SourceFile string
	RecordedAt time.Time
}

// PriceHistory manages commodity price history operations.
type PriceHistory struct {
	conn *Connection
}

// NewPriceHistory creates a new PriceHistory instance.
func NewPriceHistory(conn *Connection) *PriceHistory {
	return &PriceHistory{conn: conn}
}

const upsertPrice = `
	INSERT INTO commodity_prices (commodity, price_datetime, quantity, price_commodity, price_position, source_file)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(commodity, price_datetime, price_commodity) DO UPDATE SET
		quantity = excluded.quantity,
		price_position = excluded.price_position,
		source_file = excluded.source_file,
		recorded_at = CURRENT_TIMESTAMP
`

func priceArgs(price journal.CommodityPrice, sourceFile string) []any {
	return []any{
		price.CommodityName,
		price.DateTime.UTC().Format(priceTimeLayout),
		exactString(price.Amount.Quantity),
		price.Amount.Commodity.Name,
		positionString(price.Amount.Commodity.Position),
		sourceFile,
	}
}

// RecordPrice records a commodity price.
// A price for the same commodity, time and price commodity is replaced.
func (h *PriceHistory) RecordPrice(price journal.CommodityPrice, sourceFile string) error {
	if _, err := h.conn.Exec(upsertPrice, priceArgs(price, sourceFile)...); err != nil {
		return fmt.Errorf("failed to record price: %w", err)
	}
	return nil
}

// RecordPrices records all prices from one file in a single transaction.
func (h *PriceHistory) RecordPrices(prices []journal.CommodityPrice, sourceFile string) error {
	return h.conn.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(upsertPrice)
		if err != nil {
			return fmt.Errorf("failed to prepare price insert: %w", err)
		}
		defer stmt.Close()

		for _, price := range prices {
			if _, err := stmt.Exec(priceArgs(price, sourceFile)...); err != nil {
				return fmt.Errorf("failed to record price for %s: %w", price.CommodityName, err)
			}
		}
		return nil
	})
}

// GetPrices retrieves all prices of a commodity, oldest first.
func (h *PriceHistory) GetPrices(commodity string) ([]PriceRecord, error) {
	query := `
		SELECT id, commodity, price_datetime, quantity, price_commodity, price_position, source_file, recorded_at
		FROM commodity_prices
		WHERE commodity = ?
		ORDER BY price_datetime ASC, price_commodity ASC
	`

	rows, err := h.conn.Query(query, commodity)
	if err != nil {
		return nil, fmt.Errorf("failed to get prices: %w", err)
	}
	defer rows.Close()

	var records []PriceRecord
	for rows.Next() {
		record, err := scanPrice(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prices: %w", err)
	}

	return records, nil
}

// LatestPrice retrieves the most recent price of a commodity.
// Returns nil if the commodity has no prices.
func (h *PriceHistory) LatestPrice(commodity string) (*PriceRecord, error) {
	query := `
		SELECT id, commodity, price_datetime, quantity, price_commodity, price_position, source_file, recorded_at
		FROM commodity_prices
		WHERE commodity = ?
		ORDER BY price_datetime DESC, id DESC
		LIMIT 1
	`

	record, err := scanPrice(h.conn.QueryRow(query, commodity))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// DeletePrices deletes every price of a commodity and returns how many were removed.
func (h *PriceHistory) DeletePrices(commodity string) (int64, error) {
	result, err := h.conn.Exec(`DELETE FROM commodity_prices WHERE commodity = ?`, commodity)
	if err != nil {
		return 0, fmt.Errorf("failed to delete prices: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPrice returns sql.ErrNoRows unwrapped so callers can detect it.
func scanPrice(row rowScanner) (*PriceRecord, error) {
	var record PriceRecord
	var datetime, quantity, position string

	err := row.Scan(
		&record.ID,
		&record.Price.CommodityName,
		&datetime,
		&quantity,
		&record.Price.Amount.Commodity.Name,
		&position,
		&record.SourceFile,
		&record.RecordedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan price: %w", err)
	}

	if record.Price.DateTime, err = time.Parse(priceTimeLayout, datetime); err != nil {
		return nil, fmt.Errorf("invalid price time %q: %w", datetime, err)
	}
	if record.Price.Amount.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return nil, fmt.Errorf("invalid price quantity %q: %w", quantity, err)
	}
	record.Price.Amount.Commodity.Position = parsePosition(position)

	return &record, nil
}

// Stats represents price history statistics.
type Stats struct {
	TotalPrices      int
	TotalCommodities int
	FirstPrice       sql.NullString
	LastPrice        sql.NullString
	LastImport       sql.NullString
}

// GetStats retrieves price history statistics.
func (h *PriceHistory) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT commodity) FROM commodity_prices`).
		Scan(&stats.TotalPrices, &stats.TotalCommodities)
	if err != nil {
		return nil, fmt.Errorf("failed to get price counts: %w", err)
	}

	err = h.conn.QueryRow(`SELECT MIN(price_datetime), MAX(price_datetime) FROM commodity_prices`).
		Scan(&stats.FirstPrice, &stats.LastPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to get price range: %w", err)
	}

	stats.LastImport.String, err = h.GetMetadata(MetadataLastImport)
	if err != nil {
		return nil, err
	}
	stats.LastImport.Valid = stats.LastImport.String != ""

	return &stats, nil
}

// MetadataLastImport is the metadata key holding the time of the last import.
const MetadataLastImport = "last_import"

// GetMetadata retrieves a metadata value.
// Returns an empty string if the key is not set.
func (h *PriceHistory) GetMetadata(key string) (string, error) {
	var value string
	err := h.conn.QueryRow(`SELECT value FROM price_metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *PriceHistory) SetMetadata(key, value string) error {
	query := `
		INSERT INTO price_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := h.conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}

// exactString keeps the scale of q, so 5.00 is stored as "5.00".
func exactString(q decimal.Decimal) string {
	places := -q.Exponent()
	if places < 0 {
		places = 0
	}
	return q.StringFixed(places)
}

func positionString(p journal.CommodityPosition) string {
	if p == journal.CommodityLeft {
		return "left"
	}
	return "right"
}

func parsePosition(s string) journal.CommodityPosition {
	if s == "left" {
		return journal.CommodityLeft
	}
	return journal.CommodityRight
}

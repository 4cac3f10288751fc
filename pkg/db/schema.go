// Package db provides SQLite storage for commodity price history and metadata.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Commodity price history
-- One row per P directive, keyed by commodity, time and the commodity it is priced in
CREATE TABLE IF NOT EXISTS commodity_prices (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    commodity TEXT NOT NULL,           -- priced commodity, e.g. 'mBH'
    price_datetime TEXT NOT NULL,      -- YYYY-MM-DD HH:MM:SS
    quantity TEXT NOT NULL,            -- exact decimal as written, e.g. '5.00'
    price_commodity TEXT NOT NULL,     -- commodity of the price amount, may be ''
    price_position TEXT NOT NULL,      -- 'left' or 'right'
    source_file TEXT NOT NULL,         -- journal file the price came from
    recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(commodity, price_datetime, price_commodity)
);

CREATE INDEX IF NOT EXISTS idx_commodity_prices_commodity
    ON commodity_prices(commodity, price_datetime);

-- Key-value metadata about imports
CREATE TABLE IF NOT EXISTS price_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}

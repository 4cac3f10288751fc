package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pigeonworks-llc/journalfmt/pkg/journal"
)

func openTestHistory(t *testing.T) *PriceHistory {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "prices.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewPriceHistory(conn)
}

func price(commodity string, day, hour int, unscaled int64, exp int32, in string, pos journal.CommodityPosition) journal.CommodityPrice {
	return journal.CommodityPrice{
		DateTime:      time.Date(2017, time.November, day, hour, 0, 0, 0, time.UTC),
		CommodityName: commodity,
		Amount: journal.Amount{
			Quantity:  decimal.New(unscaled, exp),
			Commodity: journal.Commodity{Name: in, Position: pos},
		},
	}
}

func TestRecordPrice_RoundTrip(t *testing.T) {
	h := openTestHistory(t)

	p := price("mBH", 12, 12, 500, -2, "PLN", journal.CommodityRight)
	require.NoError(t, h.RecordPrice(p, "2017/2017-11.journal"))

	records, err := h.GetPrices("mBH")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, p, records[0].Price)
	assert.Equal(t, "2017/2017-11.journal", records[0].SourceFile)
	assert.Equal(t, int32(-2), records[0].Price.Amount.Quantity.Exponent(), "scale is preserved")
	assert.False(t, records[0].RecordedAt.IsZero())
}

func TestRecordPrice_Upsert(t *testing.T) {
	h := openTestHistory(t)

	require.NoError(t, h.RecordPrice(price("EUR", 12, 0, 425, -2, "PLN", journal.CommodityRight), "a.journal"))
	require.NoError(t, h.RecordPrice(price("EUR", 12, 0, 430, -2, "PLN", journal.CommodityRight), "b.journal"))
	require.NoError(t, h.RecordPrice(price("EUR", 12, 0, 118, -2, "$", journal.CommodityLeft), "b.journal"))

	records, err := h.GetPrices("EUR")
	require.NoError(t, err)
	require.Len(t, records, 2)

	byCommodity := map[string]PriceRecord{}
	for _, r := range records {
		byCommodity[r.Price.Amount.Commodity.Name] = r
	}
	assert.True(t, decimal.New(430, -2).Equal(byCommodity["PLN"].Price.Amount.Quantity))
	assert.Equal(t, "b.journal", byCommodity["PLN"].SourceFile)
	assert.Equal(t, journal.CommodityLeft, byCommodity["$"].Price.Amount.Commodity.Position)
}

func TestRecordPrices_AndLatest(t *testing.T) {
	h := openTestHistory(t)

	prices := []journal.CommodityPrice{
		price("mBH", 14, 9, 510, -2, "PLN", journal.CommodityRight),
		price("mBH", 12, 12, 500, -2, "PLN", journal.CommodityRight),
		price("ACME", 13, 0, 42, 0, "", journal.CommodityRight),
	}
	require.NoError(t, h.RecordPrices(prices, "2017-11.journal"))

	records, err := h.GetPrices("mBH")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, prices[1], records[0].Price, "oldest first")
	assert.Equal(t, prices[0], records[1].Price)

	latest, err := h.LatestPrice("mBH")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, prices[0], latest.Price)

	none, err := h.LatestPrice("XYZ")
	require.NoError(t, err)
	assert.Nil(t, none)

	deleted, err := h.DeletePrices("mBH")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	records, err = h.GetPrices("mBH")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetStats(t *testing.T) {
	h := openTestHistory(t)

	stats, err := h.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalPrices)
	assert.False(t, stats.FirstPrice.Valid)
	assert.False(t, stats.LastImport.Valid)

	require.NoError(t, h.RecordPrices([]journal.CommodityPrice{
		price("mBH", 12, 12, 500, -2, "PLN", journal.CommodityRight),
		price("mBH", 14, 9, 510, -2, "PLN", journal.CommodityRight),
		price("EUR", 13, 0, 425, -2, "PLN", journal.CommodityRight),
	}, "2017-11.journal"))
	require.NoError(t, h.SetMetadata(MetadataLastImport, "2017-11-30T10:00:00Z"))

	stats, err = h.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalPrices)
	assert.Equal(t, 2, stats.TotalCommodities)
	assert.Equal(t, "2017-11-12 12:00:00", stats.FirstPrice.String)
	assert.Equal(t, "2017-11-14 09:00:00", stats.LastPrice.String)
	assert.Equal(t, "2017-11-30T10:00:00Z", stats.LastImport.String)
	assert.True(t, stats.LastImport.Valid)
}

func TestMetadata(t *testing.T) {
	h := openTestHistory(t)

	value, err := h.GetMetadata("missing")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, h.SetMetadata("k", "v1"))
	require.NoError(t, h.SetMetadata("k", "v2"))

	value, err = h.GetMetadata("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)
}

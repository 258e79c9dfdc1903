package types

import (
	"sort"
	"time"
)

// MarketData is a single bar of a price history.
type MarketData struct {
	Id     string    `csv:"id"`
	Symbol string    `csv:"symbol"`
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
	// AdjClose, Dividends and StockSplits are provider-specific adjustments.
	// Providers that do not report them leave the zero value.
	AdjClose    float64 `csv:"adj_close"`
	Dividends   float64 `csv:"dividends"`
	StockSplits float64 `csv:"stock_splits"`
}

// PriceTable is the time-indexed price history of one symbol.
// Rows are ordered by ascending Time.
type PriceTable struct {
	Symbol string
	Rows   []MarketData
}

// NewPriceTable returns an empty table for the symbol.
func NewPriceTable(symbol string) PriceTable {
	return PriceTable{
		Symbol: symbol,
		Rows:   []MarketData{},
	}
}

// Len returns the number of rows.
func (t PriceTable) Len() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table holds no rows.
func (t PriceTable) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Head returns at most the first n rows.
func (t PriceTable) Head(n int) []MarketData {
	if n < 0 {
		n = 0
	}

	if n > len(t.Rows) {
		n = len(t.Rows)
	}

	return t.Rows[:n]
}

// SortByTime orders the rows by ascending time, keeping the original
// order of rows that share a timestamp.
func (t *PriceTable) SortByTime() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].Time.Before(t.Rows[j].Time)
	})
}

package writer

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
)

var marketDataColumns = []string{
	"id", "time", "symbol", "open", "high", "low", "close", "adj_close", "volume", "dividends", "stock_splits",
}

// DuckDBWriter stages rows in an in-memory DuckDB table and exports them
// as a Parquet file on Finalize.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

// NewDuckDBWriter creates a new DuckDBWriter.
// outputPath specifies the Parquet file written by Finalize.
func NewDuckDBWriter(outputPath string) MarketDataWriter {
	return &DuckDBWriter{
		db:         nil,
		tx:         nil,
		stmt:       nil,
		outputPath: outputPath,
	}
}

// Initialize opens an in-memory database, creates the market_data table,
// begins a transaction and prepares the insert statement.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS market_data (
			id TEXT,
			time TIMESTAMPTZ,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			adj_close DOUBLE,
			volume DOUBLE,
			dividends DOUBLE,
			stock_splits DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()
		w.db = nil

		return fmt.Errorf("failed to create table: %w", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()
		w.db = nil

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	insertSQL, _, err := squirrel.Insert("market_data").
		Columns(marketDataColumns...).
		Values(make([]any, len(marketDataColumns))...).
		ToSql()
	if err != nil {
		w.rollbackAndClose()

		return fmt.Errorf("failed to build insert statement: %w", err)
	}

	w.stmt, err = w.tx.Prepare(insertSQL)
	if err != nil {
		w.rollbackAndClose()

		return fmt.Errorf("failed to prepare statement: %w", err)
	}

	return nil
}

func (w *DuckDBWriter) rollbackAndClose() {
	w.tx.Rollback()
	w.tx = nil
	w.db.Close()
	w.db = nil
}

// Write inserts a single row within the open transaction.
func (w *DuckDBWriter) Write(data types.MarketData) error {
	if w.stmt == nil {
		return fmt.Errorf("writer not initialized or statement is nil")
	}

	id := data.Id
	if id == "" {
		id = uuid.New().String()
	}

	_, err := w.stmt.Exec(
		id,
		data.Time,
		data.Symbol,
		data.Open,
		data.High,
		data.Low,
		data.Close,
		data.AdjClose,
		data.Volume,
		data.Dividends,
		data.StockSplits,
	)
	if err != nil {
		return fmt.Errorf("failed to insert data: %w", err)
	}

	return nil
}

// Finalize commits the transaction and exports the rows, ordered by time,
// to the Parquet file.
func (w *DuckDBWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", fmt.Errorf("writer not initialized or transaction is nil")
	}

	if err = w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.tx = nil

	quotedPath := strings.ReplaceAll(w.outputPath, "'", "''")

	_, err = w.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM market_data ORDER BY time) TO '%s' (FORMAT PARQUET)`, quotedPath))
	if err != nil {
		return "", fmt.Errorf("failed to export to Parquet: %w", err)
	}

	return w.outputPath, nil
}

// Close releases the statement, any pending transaction and the connection.
func (w *DuckDBWriter) Close() error {
	var closeErrors []string

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close statement: %v", err))
		}

		w.stmt = nil
	}

	// Finalize was not called or failed
	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to rollback transaction: %v", err))
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close db connection: %v", err))
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		return fmt.Errorf("errors occurred during close: %s", strings.Join(closeErrors, "; "))
	}

	return nil
}

func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}

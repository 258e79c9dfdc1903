package writer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
)

// CSVHeader is the first record of every CSV file. The first column is the
// time index of the table.
var CSVHeader = []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume", "Dividends", "Stock Splits"}

// CSVWriter writes one record per market data row.
type CSVWriter struct {
	outputPath string
	file       *os.File
	buffer     *bufio.Writer
	csv        *csv.Writer
}

// NewCSVWriter creates a new CSVWriter writing to outputPath.
// An existing file at outputPath is truncated.
func NewCSVWriter(outputPath string) MarketDataWriter {
	return &CSVWriter{
		outputPath: outputPath,
		file:       nil,
		buffer:     nil,
		csv:        nil,
	}
}

// Initialize opens the output file and writes the header.
func (w *CSVWriter) Initialize() error {
	file, err := os.OpenFile(w.outputPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}

	w.file = file
	w.buffer = bufio.NewWriter(file)
	w.csv = csv.NewWriter(w.buffer)

	if err := w.csv.Write(CSVHeader); err != nil {
		w.Close()

		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	return nil
}

// Write appends a single row.
func (w *CSVWriter) Write(data types.MarketData) error {
	if w.csv == nil {
		return fmt.Errorf("writer not initialized or file is nil")
	}

	record := []string{
		data.Time.Format(time.RFC3339),
		formatFloat(data.Open),
		formatFloat(data.High),
		formatFloat(data.Low),
		formatFloat(data.Close),
		formatFloat(data.AdjClose),
		formatFloat(data.Volume),
		formatFloat(data.Dividends),
		formatFloat(data.StockSplits),
	}

	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("failed to write CSV record: %w", err)
	}

	return nil
}

// Finalize flushes all buffered records to disk.
func (w *CSVWriter) Finalize() (outputPath string, err error) {
	if w.csv == nil {
		return "", fmt.Errorf("writer not initialized or file is nil")
	}

	w.csv.Flush()

	if err := w.csv.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV records: %w", err)
	}

	if err := w.buffer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush CSV buffer: %w", err)
	}

	return w.outputPath, nil
}

// Close releases the file handle. Records not finalized are discarded.
func (w *CSVWriter) Close() error {
	w.csv = nil
	w.buffer = nil

	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil

	if err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}

	return nil
}

func (w *CSVWriter) GetOutputPath() string {
	return w.outputPath
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

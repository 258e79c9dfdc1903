package writer

import (
	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
)

// WriterType defines the output format of a market data writer.
type WriterType string

const (
	WriterCSV     WriterType = "csv"
	WriterParquet WriterType = "parquet"
)

// Extension returns the file extension, without dot, for the writer type.
func (t WriterType) Extension() string {
	return string(t)
}

// MarketDataWriter defines the interface for writing market data to a destination.
type MarketDataWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single market data point.
	Write(data types.MarketData) error
	// Finalize completes the writing process (e.g., flushes buffers, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}

// NewMarketDataWriter creates a writer of the given type for outputPath.
func NewMarketDataWriter(writerType WriterType, outputPath string) (MarketDataWriter, error) {
	switch writerType {
	case WriterCSV:
		return NewCSVWriter(outputPath), nil
	case WriterParquet:
		return NewDuckDBWriter(outputPath), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidWriter, "unsupported market data writer: %s", writerType)
	}
}

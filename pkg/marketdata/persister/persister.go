package persister

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/bovespa-fetcher/internal/logger"
	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/marketdata/writer"
)

// OnProgress is called after each row is written.
type OnProgress = func(current float64, total float64, message string)

// Config holds the output settings of a Persister.
type Config struct {
	DataDir string            `validate:"required"`
	Prefix  string            `validate:"required"`
	Format  writer.WriterType `validate:"required,oneof=csv parquet"`
}

type writerFactory func(writerType writer.WriterType, outputPath string) (writer.MarketDataWriter, error)

// Persister writes price tables to timestamped files in a data directory.
type Persister struct {
	config     Config
	logger     *logger.Logger
	now        func() time.Time
	onProgress OnProgress
	newWriter  writerFactory
}

// NewPersister creates a persister. onProgress may be nil.
func NewPersister(config Config, log *logger.Logger, onProgress OnProgress) (*Persister, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWriter, "invalid persister configuration", err)
	}

	return &Persister{
		config:     config,
		logger:     log,
		now:        time.Now,
		onProgress: onProgress,
		newWriter:  writer.NewMarketDataWriter,
	}, nil
}

// WithClock replaces the clock used to name output files.
func (p *Persister) WithClock(now func() time.Time) *Persister {
	p.now = now

	return p
}

// Save writes table to <DataDir>/<Prefix>_YYYYMMDD_HHMMSS.<ext> and returns
// the path. Empty tables produce a header-only file. An existing file is
// never overwritten; a numeric suffix is added instead.
func (p *Persister) Save(ctx context.Context, table types.PriceTable) (string, error) {
	outputPath, err := writer.ReserveOutputPath(p.config.DataDir, p.config.Prefix, p.config.Format.Extension(), p.now())
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create output file", err)
	}

	if err := p.write(ctx, outputPath, table); err != nil {
		// Drop the partial file so a failed run leaves nothing behind
		os.Remove(outputPath)

		return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to save data to %s", outputPath)
	}

	p.logger.Info(fmt.Sprintf("Data saved to %s", outputPath))

	return outputPath, nil
}

func (p *Persister) write(ctx context.Context, outputPath string, table types.PriceTable) error {
	marketWriter, err := p.newWriter(p.config.Format, outputPath)
	if err != nil {
		return err
	}

	defer func() {
		if err := marketWriter.Close(); err != nil {
			p.logger.Warn(fmt.Sprintf("failed to close writer: %v", err))
		}
	}()

	if err := marketWriter.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize writer: %w", err)
	}

	total := float64(table.Len())

	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := marketWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}

		if p.onProgress != nil {
			p.onProgress(float64(i+1), total, fmt.Sprintf("Writing %s", table.Symbol))
		}
	}

	if _, err := marketWriter.Finalize(); err != nil {
		return fmt.Errorf("failed to finalize writer: %w", err)
	}

	return nil
}

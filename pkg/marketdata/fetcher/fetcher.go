package fetcher

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/bovespa-fetcher/internal/logger"
	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/marketdata/provider"
)

// Status classifies the outcome of a fetch.
type Status string

const (
	// StatusSuccess means the provider returned at least one row.
	StatusSuccess Status = "success"
	// StatusEmpty means the provider answered without rows.
	StatusEmpty Status = "empty"
	// StatusFailed means the provider call failed.
	StatusFailed Status = "failed"
)

// Result is the outcome of Fetch. Table is empty unless Status is
// StatusSuccess, and Err is only set when Status is StatusFailed.
type Result struct {
	Status Status
	Table  types.PriceTable
	Err    error
}

// HasData reports whether the result carries rows.
func (r Result) HasData() bool {
	return r.Status == StatusSuccess && !r.Table.IsEmpty()
}

// Fetcher retrieves the history of a single ticker from a provider.
type Fetcher struct {
	provider provider.Provider
	logger   *logger.Logger
	ticker   string
	interval provider.Interval
}

// NewFetcher creates a fetcher for ticker sampled at interval.
func NewFetcher(marketProvider provider.Provider, log *logger.Logger, ticker string, interval provider.Interval) *Fetcher {
	return &Fetcher{
		provider: marketProvider,
		logger:   log,
		ticker:   ticker,
		interval: interval,
	}
}

// Fetch requests the history over period. The period is passed to the
// provider unchecked. Fetch never returns an error or panics; failures are
// logged and reported through Result.
func (f *Fetcher) Fetch(ctx context.Context, period provider.Period) (result Result) {
	f.logger.Info(fmt.Sprintf("Starting data fetch for %s (period: %s)", f.ticker, period))

	defer func() {
		if r := recover(); r != nil {
			result = f.failed(fmt.Errorf("provider panicked: %v", r))
		}
	}()

	table, err := f.provider.History(ctx, f.ticker, period, f.interval)
	if err != nil {
		return f.failed(err)
	}

	if table.IsEmpty() {
		f.logger.Warn("No data returned by the provider")

		return Result{
			Status: StatusEmpty,
			Table:  types.NewPriceTable(f.ticker),
			Err:    nil,
		}
	}

	f.logger.Info("Data fetched successfully")

	return Result{
		Status: StatusSuccess,
		Table:  table,
		Err:    nil,
	}
}

func (f *Fetcher) failed(err error) Result {
	f.logger.Error(fmt.Sprintf("Data fetch failed: %v", err))

	return Result{
		Status: StatusFailed,
		Table:  types.NewPriceTable(f.ticker),
		Err:    errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s", f.ticker),
	}
}

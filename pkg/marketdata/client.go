package marketdata

import (
	"context"
	"fmt"
	"io"

	"github.com/rxtech-lab/bovespa-fetcher/internal/config"
	"github.com/rxtech-lab/bovespa-fetcher/internal/logger"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/marketdata/fetcher"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/marketdata/persister"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/marketdata/provider"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/marketdata/writer"
)

const (
	// HeadRows is the number of rows printed after a successful fetch.
	HeadRows = 5
	// HeadTitle precedes the printed rows.
	HeadTitle = "First rows of the data:"
	// FailureMessage is printed when the fetch produced no rows.
	FailureMessage = "Data fetch failed. Check the logs."
)

// Report summarizes one pipeline run.
type Report struct {
	Result     fetcher.Result
	OutputPath string
}

// Saved reports whether the run wrote an output file.
func (r Report) Saved() bool {
	return r.OutputPath != ""
}

// Client runs the fetch, print and save pipeline for one ticker.
type Client struct {
	fetcher   *fetcher.Fetcher
	persister *persister.Persister
	period    provider.Period
}

// NewClient creates a client whose provider is chosen by cfg.Provider.
func NewClient(cfg *config.Config, log *logger.Logger, onProgress persister.OnProgress) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	marketProvider, err := provider.NewMarketDataProvider(provider.ProviderType(cfg.Provider), provider.Config{
		YahooBaseURL:  cfg.YahooBaseURL,
		PolygonApiKey: cfg.PolygonApiKey,
		Proxy:         cfg.Proxy,
		Timeout:       cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", cfg.Provider, err)
	}

	return NewClientWithProvider(cfg, marketProvider, log, onProgress)
}

// NewClientWithProvider creates a client around an existing provider.
func NewClientWithProvider(cfg *config.Config, marketProvider provider.Provider, log *logger.Logger, onProgress persister.OnProgress) (*Client, error) {
	if marketProvider == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "provider is required")
	}

	p, err := persister.NewPersister(persister.Config{
		DataDir: cfg.DataDir,
		Prefix:  cfg.FilePrefix,
		Format:  writer.WriterType(cfg.Format),
	}, log, onProgress)
	if err != nil {
		return nil, err
	}

	return &Client{
		fetcher:   fetcher.NewFetcher(marketProvider, log, cfg.Ticker, provider.Interval(cfg.Interval)),
		persister: p,
		period:    provider.Period(cfg.Period),
	}, nil
}

// Persister exposes the client's persister, mainly to swap its clock.
func (c *Client) Persister() *persister.Persister {
	return c.persister
}

// Run fetches the history once. With rows, the first HeadRows rows are
// printed to out and the table is saved; otherwise FailureMessage is
// printed. A failed fetch is not an error of Run; only save failures are.
func (c *Client) Run(ctx context.Context, out io.Writer) (Report, error) {
	result := c.fetcher.Fetch(ctx, c.period)

	//nolint:exhaustruct
	report := Report{Result: result}

	if !result.HasData() {
		fmt.Fprintln(out, FailureMessage)

		return report, nil
	}

	fmt.Fprintln(out, HeadTitle)
	fmt.Fprintln(out, RenderHead(result.Table, HeadRows))

	outputPath, err := c.persister.Save(ctx, result.Table)
	if err != nil {
		return report, err
	}

	report.OutputPath = outputPath

	return report, nil
}

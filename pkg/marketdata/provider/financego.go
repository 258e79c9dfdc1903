package provider

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
)

// ChartIterator is the subset of the finance-go chart iterator the client consumes.
type ChartIterator interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
}

// ChartFunc opens a chart iterator for the given parameters.
type ChartFunc func(params *chart.Params) ChartIterator

// FinanceGoClient reads price history through the finance-go chart package.
type FinanceGoClient struct {
	chart      ChartFunc
	now        func() time.Time
	httpClient *http.Client
}

// NewFinanceGoClient creates a client with its own Yahoo backend, so the
// timeout and proxy do not leak into the package-wide finance-go client.
func NewFinanceGoClient(timeout time.Duration, proxy string) (*FinanceGoClient, error) {
	httpClient, err := NewHTTPClient(timeout, proxy)
	if err != nil {
		return nil, err
	}

	return newFinanceGoClient(finance.YFinURL, httpClient), nil
}

func newFinanceGoClient(baseURL string, httpClient *http.Client) *FinanceGoClient {
	chartClient := chart.Client{B: &finance.BackendConfiguration{
		Type:       finance.YFinBackend,
		URL:        baseURL,
		HTTPClient: httpClient,
	}}

	return &FinanceGoClient{
		chart: func(params *chart.Params) ChartIterator {
			return chartClient.Get(params)
		},
		now:        time.Now,
		httpClient: httpClient,
	}
}

// NewFinanceGoClientWithChart creates a client backed by a custom chart function.
func NewFinanceGoClientWithChart(chartFunc ChartFunc, now func() time.Time) *FinanceGoClient {
	return &FinanceGoClient{
		chart:      chartFunc,
		now:        now,
		httpClient: nil,
	}
}

func (c *FinanceGoClient) Name() string { return string(ProviderFinanceGo) }

// History converts period into an explicit date range, since the chart
// package has no notion of ranges.
func (c *FinanceGoClient) History(ctx context.Context, ticker string, period Period, interval Interval) (types.PriceTable, error) {
	start, end, err := period.Range(c.now())
	if err != nil {
		return types.PriceTable{}, err
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.FromUnix(int(start.Unix())),
		End:      datetime.FromUnix(int(end.Unix())),
		Interval: datetime.Interval(interval),
	}
	params.Context = &ctx

	iter := c.chart(params)
	table := types.NewPriceTable(ticker)

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return types.PriceTable{}, err
		}

		bar := iter.Bar()
		if bar == nil {
			continue
		}

		table.Rows = append(table.Rows, types.MarketData{
			Id:          strconv.Itoa(bar.Timestamp),
			Symbol:      ticker,
			Time:        time.Unix(int64(bar.Timestamp), 0),
			Open:        bar.Open.InexactFloat64(),
			High:        bar.High.InexactFloat64(),
			Low:         bar.Low.InexactFloat64(),
			Close:       bar.Close.InexactFloat64(),
			Volume:      float64(bar.Volume),
			AdjClose:    bar.AdjClose.InexactFloat64(),
			Dividends:   0,
			StockSplits: 0,
		})
	}

	if err := iter.Err(); err != nil {
		return types.PriceTable{}, fmt.Errorf("error iterating finance-go chart: %w", err)
	}

	table.SortByTime()

	return table, nil
}

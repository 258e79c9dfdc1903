package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
)

// PolygonAggsIterator is the subset of the polygon aggregates iterator the client consumes.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the subset of the polygon REST client the provider calls.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonAPIAdapter struct {
	client *polygon.Client
}

func (a *polygonAPIAdapter) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return a.client.ListAggs(ctx, params, options...)
}

type PolygonClient struct {
	apiClient  PolygonAPIClient
	now        func() time.Time
	httpClient *http.Client
}

func NewPolygonClient(apiKey string, timeout time.Duration, proxy string) (Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	httpClient, err := NewHTTPClient(timeout, proxy)
	if err != nil {
		return nil, err
	}

	return &PolygonClient{
		apiClient:  &polygonAPIAdapter{client: polygon.NewWithClient(apiKey, httpClient)},
		now:        time.Now,
		httpClient: httpClient,
	}, nil
}

// NewPolygonClientWithAPI creates a client backed by a custom API implementation.
func NewPolygonClientWithAPI(apiClient PolygonAPIClient, now func() time.Time) *PolygonClient {
	return &PolygonClient{
		apiClient:  apiClient,
		now:        now,
		httpClient: nil,
	}
}

func (c *PolygonClient) Name() string { return string(ProviderPolygon) }

// History lists the aggregates of ticker over the date range covered by period.
// Tickers must use Polygon's notation (indices carry the "I:" prefix); Yahoo
// style "^" symbols are rejected since Polygon has no mapping for them.
func (c *PolygonClient) History(ctx context.Context, ticker string, period Period, interval Interval) (types.PriceTable, error) {
	if strings.HasPrefix(ticker, "^") {
		return types.PriceTable{}, errors.Newf(errors.ErrCodeInvalidParameter,
			"polygon: %s is a Yahoo symbol, configure the ticker in Polygon notation (e.g. I:SPX)", ticker)
	}

	timespan, err := interval.PolygonTimespan()
	if err != nil {
		return types.PriceTable{}, err
	}

	start, end, err := period.Range(c.now())
	if err != nil {
		return types.PriceTable{}, err
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: interval.Multiplier(),
		Timespan:   timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	iter := c.apiClient.ListAggs(ctx, params)
	table := types.NewPriceTable(ticker)

	for iter.Next() {
		agg := iter.Item()
		table.Rows = append(table.Rows, types.MarketData{
			Id:          fmt.Sprintf("%d", time.Time(agg.Timestamp).Unix()),
			Symbol:      ticker,
			Time:        time.Time(agg.Timestamp),
			Open:        agg.Open,
			High:        agg.High,
			Low:         agg.Low,
			Close:       agg.Close,
			Volume:      agg.Volume,
			AdjClose:    agg.Close,
			Dividends:   0,
			StockSplits: 0,
		})
	}

	if iter.Err() != nil {
		return types.PriceTable{}, fmt.Errorf("error iterating polygon aggregates: %w", iter.Err())
	}

	table.SortByTime()

	return table, nil
}

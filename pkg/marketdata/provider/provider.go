package provider

import (
	"context"
	"time"

	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderYahoo     ProviderType = "yahoo"
	ProviderFinanceGo ProviderType = "financego"
	ProviderPolygon   ProviderType = "polygon"
)

type Provider interface {
	// Name returns the provider identifier used in logs.
	Name() string
	// History returns the price history of ticker over the lookback period.
	// The returned table is sorted by ascending time and is either complete
	// or accompanied by an error; an empty table without error means the
	// provider had no data for the period.
	// example:
	// History(ctx, "^BVSP", PeriodOneMonth, IntervalOneDay)
	History(ctx context.Context, ticker string, period Period, interval Interval) (types.PriceTable, error)
}

// Config carries the settings every provider may need.
type Config struct {
	YahooBaseURL  string
	PolygonApiKey string
	Proxy         string
	Timeout       time.Duration
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
func NewMarketDataProvider(providerType ProviderType, config Config) (Provider, error) {
	switch providerType {
	case ProviderYahoo:
		return NewYahooClient(config.YahooBaseURL, config.Proxy, config.Timeout), nil
	case ProviderFinanceGo:
		client, err := NewFinanceGoClient(config.Timeout, config.Proxy)
		if err != nil {
			return nil, err
		}

		return client, nil
	case ProviderPolygon:
		return NewPolygonClient(config.PolygonApiKey, config.Timeout, config.Proxy)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}

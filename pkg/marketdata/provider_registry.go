package marketdata

import (
	"sort"

	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/marketdata/provider"
)

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[provider.ProviderType]ProviderInfo{
	provider.ProviderYahoo: {
		Name:         string(provider.ProviderYahoo),
		DisplayName:  "Yahoo Finance",
		Description:  "Yahoo Finance chart API with dividends and splits, queried directly over HTTP",
		RequiresAuth: false,
	},
	provider.ProviderFinanceGo: {
		Name:         string(provider.ProviderFinanceGo),
		DisplayName:  "Yahoo Finance (finance-go)",
		Description:  "Yahoo Finance chart data through the finance-go client library",
		RequiresAuth: false,
	},
	provider.ProviderPolygon: {
		Name:         string(provider.ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "Aggregate bars from Polygon.io; set ticker in Polygon notation (e.g. I:SPX), ^ symbols are rejected",
		RequiresAuth: true,
	},
}

// GetSupportedProviders returns the names of all supported providers, sorted.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[provider.ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}

	return info, nil
}

package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/bovespa-fetcher/pkg/marketdata/provider Provider
//go:generate mockgen -destination=./mock_writer.go -package=mocks github.com/rxtech-lab/bovespa-fetcher/pkg/marketdata/writer MarketDataWriter

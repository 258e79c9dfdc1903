package provider

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
)

const yahooChartPath = "/v8/finance/chart/{symbol}"

// YahooClient reads price history from the Yahoo Finance chart API.
type YahooClient struct {
	client *resty.Client
}

// NewYahooClient creates a client for the chart API rooted at baseURL.
func NewYahooClient(baseURL string, proxy string, timeout time.Duration) *YahooClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0").
		SetHeader("Accept", "application/json")

	if proxy != "" {
		client.SetProxy(proxy)
	}

	return &YahooClient{
		client: client,
	}
}

func (c *YahooClient) Name() string { return string(ProviderYahoo) }

// yahooChart is the response structure of the chart API.
type yahooChart struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooChartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
		GMTOffset            int    `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp []int64 `json:"timestamp"`
	Events    struct {
		Dividends map[string]struct {
			Amount float64 `json:"amount"`
			Date   int64   `json:"date"`
		} `json:"dividends"`
		Splits map[string]struct {
			Date        int64   `json:"date"`
			Numerator   float64 `json:"numerator"`
			Denominator float64 `json:"denominator"`
		} `json:"splits"`
	} `json:"events"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

// History requests the chart for ticker. The period is forwarded as the
// chart range without local validation.
func (c *YahooClient) History(ctx context.Context, ticker string, period Period, interval Interval) (types.PriceTable, error) {
	var chart yahooChart

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", ticker).
		SetQueryParams(map[string]string{
			"range":    string(period),
			"interval": string(interval),
			"events":   "div,splits",
		}).
		SetResult(&chart).
		SetError(&chart).
		Get(yahooChartPath)
	if err != nil {
		return types.PriceTable{}, fmt.Errorf("yahoo request failed: %w", err)
	}

	if chart.Chart.Error != nil {
		return types.PriceTable{}, errors.Newf(errors.ErrCodeDataSourceUnavailable, "yahoo api error: %s", chart.Chart.Error.Description)
	}

	if resp.StatusCode() != http.StatusOK {
		return types.PriceTable{}, errors.NewHTTPStatusError(c.Name(), resp.StatusCode(), resp.String())
	}

	table := types.NewPriceTable(ticker)
	if len(chart.Chart.Result) == 0 {
		return table, nil
	}

	rows, err := yahooRows(ticker, chart.Chart.Result[0])
	if err != nil {
		return types.PriceTable{}, err
	}

	table.Rows = rows
	table.SortByTime()

	return table, nil
}

func yahooRows(ticker string, result yahooChartResult) ([]types.MarketData, error) {
	if len(result.Timestamp) == 0 {
		return []types.MarketData{}, nil
	}

	if len(result.Indicators.Quote) == 0 {
		return nil, errors.New(errors.ErrCodeMarketDataParseFailed, "yahoo: response has timestamps but no quotes")
	}

	quote := result.Indicators.Quote[0]
	for _, series := range [][]*float64{quote.Open, quote.High, quote.Low, quote.Close, quote.Volume} {
		if len(series) != len(result.Timestamp) {
			return nil, errors.Newf(errors.ErrCodeMarketDataParseFailed,
				"yahoo: quote series has %d values for %d timestamps", len(series), len(result.Timestamp))
		}
	}

	var adjClose []*float64
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) == len(result.Timestamp) {
		adjClose = result.Indicators.AdjClose[0].AdjClose
	}

	loc := time.FixedZone(result.Meta.ExchangeTimezoneName, result.Meta.GMTOffset)

	dividends := make(map[int64]float64, len(result.Events.Dividends))
	for _, dividend := range result.Events.Dividends {
		dividends[dayKey(dividend.Date, loc)] += dividend.Amount
	}

	splits := make(map[int64]float64, len(result.Events.Splits))
	for _, split := range result.Events.Splits {
		if split.Denominator != 0 {
			splits[dayKey(split.Date, loc)] = split.Numerator / split.Denominator
		}
	}

	rows := make([]types.MarketData, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		// a bar missing any price is a holiday, a halt or a partial print; a
		// zero would pass for a real price downstream
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}

		row := types.MarketData{
			Id:          strconv.FormatInt(ts, 10),
			Symbol:      ticker,
			Time:        time.Unix(ts, 0).In(loc),
			Open:        *quote.Open[i],
			High:        *quote.High[i],
			Low:         *quote.Low[i],
			Close:       *quote.Close[i],
			Volume:      volume(quote.Volume[i]),
			AdjClose:    *quote.Close[i],
			Dividends:   dividends[dayKey(ts, loc)],
			StockSplits: splits[dayKey(ts, loc)],
		}

		if adjClose != nil && adjClose[i] != nil {
			row.AdjClose = *adjClose[i]
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func dayKey(unix int64, loc *time.Location) int64 {
	t := time.Unix(unix, 0).In(loc)

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

// volume treats a null volume as no trades.
func volume(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}

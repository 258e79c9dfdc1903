package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const yahooChartFixture = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "^BVSP", "exchangeTimezoneName": "America/Sao_Paulo", "gmtoffset": -10800},
      "timestamp": [1715860800, 1715601600, 1715688000, 1715774400],
      "events": {
        "dividends": {"1715688000": {"amount": 0.5, "date": 1715688000}},
        "splits": {"1715774400": {"date": 1715774400, "numerator": 2, "denominator": 1, "splitRatio": "2:1"}}
      },
      "indicators": {
        "quote": [{
          "open":   [128300.5, 128100.0, null, 128200.0],
          "high":   [128900.0, 128500.0, null, 128800.0],
          "low":    [127900.0, 127800.0, null, 127950.0],
          "close":  [128600.0, 128150.0, null, 128300.0],
          "volume": [9100000, 8900000, null, 9000000]
        }],
        "adjclose": [{"adjclose": [128600.0, 128150.0, null, 128290.0]}]
      }
    }],
    "error": null
  }
}`

type YahooClientTestSuite struct {
	suite.Suite
	server       *httptest.Server
	lastRequest  *http.Request
	responseCode int
	responseBody string
}

func TestYahooClientSuite(t *testing.T) {
	suite.Run(t, new(YahooClientTestSuite))
}

func (suite *YahooClientTestSuite) SetupTest() {
	suite.responseCode = http.StatusOK
	suite.responseBody = yahooChartFixture
	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.lastRequest = r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(suite.responseCode)
		_, _ = w.Write([]byte(suite.responseBody))
	}))
}

func (suite *YahooClientTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *YahooClientTestSuite) client() *YahooClient {
	return NewYahooClient(suite.server.URL, "", 5*time.Second)
}

func (suite *YahooClientTestSuite) TestHistoryRequest() {
	_, err := suite.client().History(context.Background(), "^BVSP", PeriodOneMonth, IntervalOneDay)
	suite.Require().NoError(err)

	suite.Require().NotNil(suite.lastRequest)
	suite.Equal("/v8/finance/chart/^BVSP", suite.lastRequest.URL.Path)
	suite.Equal("1mo", suite.lastRequest.URL.Query().Get("range"))
	suite.Equal("1d", suite.lastRequest.URL.Query().Get("interval"))
	suite.Equal("div,splits", suite.lastRequest.URL.Query().Get("events"))
	suite.Equal("Mozilla/5.0", suite.lastRequest.Header.Get("User-Agent"))
}

func (suite *YahooClientTestSuite) TestHistoryParsesAndSorts() {
	table, err := suite.client().History(context.Background(), "^BVSP", PeriodOneMonth, IntervalOneDay)
	suite.Require().NoError(err)

	suite.Equal("^BVSP", table.Symbol)
	// The null bar is skipped
	suite.Require().Equal(3, table.Len())

	for i := 1; i < table.Len(); i++ {
		suite.True(table.Rows[i-1].Time.Before(table.Rows[i].Time))
	}

	first := table.Rows[0]
	suite.Equal(int64(1715601600), first.Time.Unix())
	suite.Equal(128100.0, first.Open)
	suite.Equal(128150.0, first.Close)
	suite.Equal(8900000.0, first.Volume)
	suite.Equal(128150.0, first.AdjClose)
	suite.Equal(0.0, first.Dividends)

	_, offset := first.Time.Zone()
	suite.Equal(-10800, offset)

	split := table.Rows[1]
	suite.Equal(int64(1715774400), split.Time.Unix())
	suite.Equal(2.0, split.StockSplits)
	suite.Equal(128290.0, split.AdjClose)

	last := table.Rows[2]
	suite.Equal(int64(1715860800), last.Time.Unix())
	suite.Equal(128600.0, last.Close)
}

func (suite *YahooClientTestSuite) TestHistorySkipsPartialNullBars() {
	suite.responseBody = `{"chart": {"result": [{
	  "meta": {"symbol": "^BVSP", "exchangeTimezoneName": "America/Sao_Paulo", "gmtoffset": -10800},
	  "timestamp": [1715601600, 1715688000, 1715774400],
	  "indicators": {"quote": [{
	    "open":   [128100.0, null, 128200.0],
	    "high":   [128500.0, 128700.0, 128800.0],
	    "low":    [127800.0, null, 127950.0],
	    "close":  [128150.0, 128400.0, 128300.0],
	    "volume": [8900000, 8700000, null]
	  }]}
	}], "error": null}}`

	table, err := suite.client().History(context.Background(), "^BVSP", PeriodOneMonth, IntervalOneDay)
	suite.Require().NoError(err)
	suite.Require().Equal(2, table.Len())

	suite.Equal(int64(1715601600), table.Rows[0].Time.Unix())
	suite.Equal(int64(1715774400), table.Rows[1].Time.Unix())

	for _, row := range table.Rows {
		suite.NotZero(row.Open)
		suite.NotZero(row.High)
		suite.NotZero(row.Low)
		suite.NotZero(row.Close)
	}

	// a null volume alone keeps the bar
	suite.Equal(0.0, table.Rows[1].Volume)
	suite.Equal(128300.0, table.Rows[1].AdjClose)
}

func (suite *YahooClientTestSuite) TestHistoryEmptyResult() {
	suite.responseBody = `{"chart": {"result": [{"meta": {"symbol": "^BVSP"}, "indicators": {"quote": [{}]}}], "error": null}}`

	table, err := suite.client().History(context.Background(), "^BVSP", PeriodOneDay, IntervalOneDay)
	suite.NoError(err)
	suite.True(table.IsEmpty())
}

func (suite *YahooClientTestSuite) TestHistoryAPIError() {
	suite.responseCode = http.StatusUnprocessableEntity
	suite.responseBody = `{"chart": {"result": null, "error": {"code": "Unprocessable Entity", "description": "Invalid input - range 7w"}}}`

	table, err := suite.client().History(context.Background(), "^BVSP", Period("7w"), IntervalOneDay)
	suite.Error(err)
	suite.Contains(err.Error(), "Invalid input - range 7w")
	suite.True(table.IsEmpty())
}

func (suite *YahooClientTestSuite) TestHistoryUnexpectedStatus() {
	suite.responseCode = http.StatusBadGateway
	suite.responseBody = `{}`

	_, err := suite.client().History(context.Background(), "^BVSP", PeriodOneMonth, IntervalOneDay)
	suite.Error(err)
	suite.True(errors.IsHTTPStatusError(err))
}

func (suite *YahooClientTestSuite) TestHistoryMismatchedSeries() {
	suite.responseBody = `{"chart": {"result": [{"timestamp": [1715601600, 1715688000], "indicators": {"quote": [{"open": [1], "high": [1], "low": [1], "close": [1], "volume": [1]}]}}], "error": null}}`

	_, err := suite.client().History(context.Background(), "^BVSP", PeriodOneMonth, IntervalOneDay)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *YahooClientTestSuite) TestHistoryCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.client().History(ctx, "^BVSP", PeriodOneMonth, IntervalOneDay)
	suite.Error(err)
}

func (suite *YahooClientTestSuite) TestName() {
	suite.Equal("yahoo", suite.client().Name())
}

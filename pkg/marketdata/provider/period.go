package provider

import (
	"time"

	"github.com/polygon-io/client-go/rest/models"

	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
)

// Period is the lookback window requested from a provider.
type Period string

const (
	PeriodOneDay     Period = "1d"
	PeriodFiveDays   Period = "5d"
	PeriodOneMonth   Period = "1mo"
	PeriodThreeMonth Period = "3mo"
	PeriodSixMonth   Period = "6mo"
	PeriodOneYear    Period = "1y"
	PeriodTwoYears   Period = "2y"
	PeriodFiveYears  Period = "5y"
	PeriodTenYears   Period = "10y"
	PeriodYearToDate Period = "ytd"
	PeriodMax        Period = "max"
)

// Range converts the period into a [start, end] window ending at now.
// Providers that only understand explicit dates use it; the Yahoo chart
// API receives the period as is.
func (p Period) Range(now time.Time) (start time.Time, end time.Time, err error) {
	switch p {
	case PeriodOneDay:
		return now.AddDate(0, 0, -1), now, nil
	case PeriodFiveDays:
		return now.AddDate(0, 0, -5), now, nil
	case PeriodOneMonth:
		return now.AddDate(0, -1, 0), now, nil
	case PeriodThreeMonth:
		return now.AddDate(0, -3, 0), now, nil
	case PeriodSixMonth:
		return now.AddDate(0, -6, 0), now, nil
	case PeriodOneYear:
		return now.AddDate(-1, 0, 0), now, nil
	case PeriodTwoYears:
		return now.AddDate(-2, 0, 0), now, nil
	case PeriodFiveYears:
		return now.AddDate(-5, 0, 0), now, nil
	case PeriodTenYears:
		return now.AddDate(-10, 0, 0), now, nil
	case PeriodYearToDate:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), now, nil
	case PeriodMax:
		return time.Unix(0, 0).In(now.Location()), now, nil
	default:
		return time.Time{}, time.Time{}, errors.Newf(errors.ErrCodeInvalidPeriod, "unsupported period: %s", p)
	}
}

// Interval is the bar size requested from a provider.
type Interval string

const (
	IntervalOneMinute      Interval = "1m"
	IntervalTwoMinutes     Interval = "2m"
	IntervalFiveMinutes    Interval = "5m"
	IntervalFifteenMinutes Interval = "15m"
	IntervalThirtyMinutes  Interval = "30m"
	IntervalSixtyMinutes   Interval = "60m"
	IntervalNinetyMinutes  Interval = "90m"
	IntervalOneHour        Interval = "1h"
	IntervalOneDay         Interval = "1d"
	IntervalFiveDays       Interval = "5d"
	IntervalOneWeek        Interval = "1wk"
	IntervalOneMonth       Interval = "1mo"
	IntervalThreeMonths    Interval = "3mo"
)

// Multiplier returns the polygon aggregate multiplier for the interval.
func (i Interval) Multiplier() int {
	switch i {
	case IntervalTwoMinutes:
		return 2
	case IntervalFiveMinutes, IntervalFiveDays:
		return 5
	case IntervalFifteenMinutes:
		return 15
	case IntervalThirtyMinutes:
		return 30
	case IntervalSixtyMinutes:
		return 60
	case IntervalNinetyMinutes:
		return 90
	case IntervalThreeMonths:
		return 3
	default:
		return 1
	}
}

// PolygonTimespan returns the polygon aggregate timespan for the interval.
func (i Interval) PolygonTimespan() (models.Timespan, error) {
	switch i {
	case IntervalOneMinute, IntervalTwoMinutes, IntervalFiveMinutes, IntervalFifteenMinutes,
		IntervalThirtyMinutes, IntervalSixtyMinutes, IntervalNinetyMinutes:
		return models.Minute, nil
	case IntervalOneHour:
		return models.Hour, nil
	case IntervalOneDay, IntervalFiveDays:
		return models.Day, nil
	case IntervalOneWeek:
		return models.Week, nil
	case IntervalOneMonth, IntervalThreeMonths:
		return models.Month, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "interval %s has no polygon timespan", i)
	}
}

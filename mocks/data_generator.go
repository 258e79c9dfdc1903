package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
)

// DataGenerator generates realistic index history for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how price history is generated.
type GeneratorConfig struct {
	// Symbol is the index ticker (e.g., "^BVSP")
	Symbol string
	// StartTime is the first session of the series
	StartTime time.Time
	// Count is the number of trading sessions to generate
	Count int
	// SkipWeekends leaves Saturdays and Sundays out of the series
	SkipWeekends bool
	// InitialPrice is the starting index level
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// VolumeBase is the average volume per session
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a month of Bovespa-like daily sessions.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "^BVSP",
		StartTime:      time.Date(2024, 4, 22, 13, 0, 0, 0, time.UTC),
		Count:          22,
		SkipWeekends:   true,
		InitialPrice:   125000.0,
		Volatility:     0.01,
		VolumeBase:     9000000,
		VolumeVariance: 0.3,
	}
}

// Generate creates a price table based on the configuration.
// Prices follow a geometric Brownian motion model.
func (g *DataGenerator) Generate(config GeneratorConfig) types.PriceTable {
	table := types.NewPriceTable(config.Symbol)
	table.Rows = make([]types.MarketData, 0, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for len(table.Rows) < config.Count {
		if config.SkipWeekends && isWeekend(currentTime) {
			currentTime = currentTime.AddDate(0, 0, 1)

			continue
		}

		open := currentPrice

		// Box-Muller transform for a normal draw
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		close := open * (1 + config.Volatility*z)
		if close <= 0 {
			close = open * 0.99
		}

		high := math.Max(open, close) + math.Abs(g.rng.Float64()*config.Volatility*open*0.5)

		low := math.Min(open, close) - math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volume := config.VolumeBase * (1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance)
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		//nolint:exhaustruct
		table.Rows = append(table.Rows, types.MarketData{
			Symbol:   config.Symbol,
			Time:     currentTime,
			Open:     roundToDecimals(open, 2),
			High:     roundToDecimals(high, 2),
			Low:      roundToDecimals(low, 2),
			Close:    roundToDecimals(close, 2),
			AdjClose: roundToDecimals(close, 2),
			Volume:   math.Round(volume),
		})

		currentPrice = close
		currentTime = currentTime.AddDate(0, 0, 1)
	}

	return table
}

// GenerateMonth is a convenience function returning one month of daily
// sessions for symbol with default settings.
func GenerateMonth(symbol string) types.PriceTable {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Symbol = symbol

	return gen.Generate(config)
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}

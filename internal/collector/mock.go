package collector

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"StockScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars  []model.Bar
	Err   error
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string) ([]model.Bar, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateDemoBars(symbol, 2850, 252), nil
}

// GenerateDemoBars produces a deterministic random-walk series for a
// symbol: one year of business-day OHLCV bars ending today. The same
// symbol always yields the same series, so offline demos are stable.
func GenerateDemoBars(symbol string, basePrice float64, days int) []model.Bar {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	dates := tradingDates(days)
	const volatility = 0.014

	bars := make([]model.Bar, 0, days)
	price := basePrice
	for i := 0; i < days; i++ {
		price *= 1 + rng.NormFloat64()*volatility + 0.0002
		open := price * (1 + rng.NormFloat64()*volatility/2)
		high := math.Max(open, price) * (1 + math.Abs(rng.NormFloat64())*volatility/3)
		low := math.Min(open, price) * (1 - math.Abs(rng.NormFloat64())*volatility/3)
		volume := math.Floor(math.Exp(15 + rng.NormFloat64()*0.5))
		bars = append(bars, model.Bar{
			Date:   dates[i],
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(price),
			Volume: volume,
		})
	}
	return bars
}

// tradingDates returns the most recent n weekdays in ascending order.
func tradingDates(n int) []time.Time {
	dates := make([]time.Time, 0, n)
	day := time.Now().UTC().Truncate(24 * time.Hour)
	for len(dates) < n {
		day = day.AddDate(0, 0, -1)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dates = append(dates, day)
	}
	// reverse to chronological order
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return dates
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

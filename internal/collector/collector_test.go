package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/cache"
	"StockScope/internal/model"
)

// scriptedFetcher fails a fixed number of times before succeeding.
type scriptedFetcher struct {
	failures int
	bars     []model.Bar
	err      error
	calls    int
}

func (f *scriptedFetcher) Name() string { return "scripted" }

func (f *scriptedFetcher) FetchDailyBars(_ context.Context, _ string) ([]model.Bar, error) {
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, nil // empty series, no error
	}
	return f.bars, nil
}

func newTestCollector(t *testing.T, fetcher Fetcher) (*Collector, *cache.Store, *[]time.Duration) {
	t.Helper()
	store, err := cache.NewStore(t.TempDir(), 24*time.Hour)
	require.NoError(t, err)

	col := NewCollector(fetcher, store, 3, 2*time.Second)
	var slept []time.Duration
	col.sleep = func(d time.Duration) { slept = append(slept, d) }
	return col, store, &slept
}

func someBars(n int) []model.Bar {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{Date: start.AddDate(0, 0, i), Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 1}
	}
	return bars
}

func TestRetryExhaustion(t *testing.T) {
	fetcher := &scriptedFetcher{failures: 10, err: errors.New("connection refused")}
	col, _, slept := newTestCollector(t, fetcher)

	_, _, err := col.GetSeries(context.Background(), "TCS.NS")
	require.Error(t, err)

	var unavailable *DataUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "TCS.NS", unavailable.Symbol)
	assert.Equal(t, 3, unavailable.Attempts)
	assert.Equal(t, 3, fetcher.calls, "exactly 3 attempts on sustained failure")
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, *slept,
		"delay between attempts, none after the last")
}

func TestEmptySeriesIsFailure(t *testing.T) {
	fetcher := &scriptedFetcher{failures: 10} // empty responses, no transport error
	col, _, _ := newTestCollector(t, fetcher)

	_, _, err := col.GetSeries(context.Background(), "INFY.NS")
	var unavailable *DataUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 3, fetcher.calls)
}

func TestSuccessAfterRetryPersists(t *testing.T) {
	fetcher := &scriptedFetcher{failures: 1, err: errors.New("timeout"), bars: someBars(5)}
	col, store, slept := newTestCollector(t, fetcher)

	series, status, err := col.GetSeries(context.Background(), "RELIANCE.NS")
	require.NoError(t, err)
	assert.Equal(t, CacheMiss, status)
	assert.Len(t, series.Bars, 5)
	assert.Equal(t, 2, fetcher.calls, "no further attempts after first success")
	assert.Len(t, *slept, 1)

	assert.True(t, store.IsValid("RELIANCE.NS"), "fetched series must be persisted")
	cached, err := store.Load("RELIANCE.NS")
	require.NoError(t, err)
	assert.Len(t, cached.Bars, 5)
}

func TestValidCacheSkipsFetch(t *testing.T) {
	fetcher := &scriptedFetcher{bars: someBars(5)}
	col, store, _ := newTestCollector(t, fetcher)

	require.NoError(t, store.Save("HDFCBANK.NS", &model.TimeSeries{Symbol: "HDFCBANK.NS", Bars: someBars(3)}))

	series, status, err := col.GetSeries(context.Background(), "HDFCBANK.NS")
	require.NoError(t, err)
	assert.Equal(t, CacheHit, status)
	assert.Len(t, series.Bars, 3)
	assert.Equal(t, 0, fetcher.calls, "valid cache entry must not trigger a fetch")
}

func TestMockFetcherDeterminism(t *testing.T) {
	a := GenerateDemoBars("TCS.NS", 3650, 252)
	b := GenerateDemoBars("TCS.NS", 3650, 252)
	require.Len(t, a, 252)
	assert.Equal(t, a, b, "same symbol must yield the same demo series")

	c := GenerateDemoBars("INFY.NS", 3650, 252)
	assert.NotEqual(t, a[0].Close, c[0].Close, "different symbols should diverge")

	for _, bar := range a {
		assert.GreaterOrEqual(t, bar.High, bar.Close)
		assert.LessOrEqual(t, bar.Low, bar.Close)
		assert.Greater(t, bar.Volume, 0.0)
	}
}

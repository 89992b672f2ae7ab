package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"StockScope/internal/cache"
	"StockScope/internal/model"
)

// CacheStatus reports whether a request was served from the cache.
type CacheStatus string

const (
	CacheHit  CacheStatus = "cached"
	CacheMiss CacheStatus = "fresh"
)

var errEmptySeries = errors.New("upstream returned an empty series")

// Collector loads a symbol's series from the cache when valid, otherwise
// fetches it from upstream with bounded retries and persists the result
// before returning.
type Collector struct {
	fetcher     Fetcher
	store       *cache.Store
	maxAttempts int
	retryDelay  time.Duration
	sleep       func(time.Duration)
}

// NewCollector creates a Collector with the given retry policy.
func NewCollector(fetcher Fetcher, store *cache.Store, maxAttempts int, retryDelay time.Duration) *Collector {
	return &Collector{
		fetcher:     fetcher,
		store:       store,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		sleep:       time.Sleep,
	}
}

// GetSeries returns the time series for a symbol and where it came from.
// A stale or missing cache entry triggers an upstream fetch; the fetched
// series is written to the cache before it is returned.
func (c *Collector) GetSeries(ctx context.Context, symbol string) (*model.TimeSeries, CacheStatus, error) {
	if c.store.IsValid(symbol) {
		series, err := c.store.Load(symbol)
		if err == nil {
			logrus.WithFields(logrus.Fields{"symbol": symbol, "rows": len(series.Bars)}).
				Debug("loaded series from cache")
			return series, CacheHit, nil
		}
		// A valid-looking entry that fails to load is refetched.
		logrus.WithFields(logrus.Fields{"symbol": symbol, "error": err}).
			Warn("cache entry unreadable, refetching")
	}

	bars, err := c.fetchWithRetry(ctx, symbol)
	if err != nil {
		return nil, "", err
	}
	series := &model.TimeSeries{Symbol: symbol, Bars: bars}
	if err := c.store.Save(symbol, series); err != nil {
		return nil, "", fmt.Errorf("persist %s: %w", symbol, err)
	}
	logrus.WithFields(logrus.Fields{"symbol": symbol, "rows": len(bars), "source": c.fetcher.Name()}).
		Info("fetched and cached series")
	return series, CacheMiss, nil
}

// fetchWithRetry attempts the upstream fetch up to maxAttempts times with
// a fixed inter-attempt delay. An empty series counts as a failure.
func (c *Collector) fetchWithRetry(ctx context.Context, symbol string) ([]model.Bar, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		bars, err := c.fetcher.FetchDailyBars(ctx, symbol)
		if err == nil && len(bars) == 0 {
			err = errEmptySeries
		}
		if err == nil {
			return bars, nil
		}
		lastErr = err
		logrus.WithFields(logrus.Fields{
			"symbol":  symbol,
			"attempt": attempt,
			"max":     c.maxAttempts,
			"error":   err,
		}).Warn("fetch attempt failed")
		if attempt < c.maxAttempts {
			c.sleep(c.retryDelay)
		}
	}
	return nil, &DataUnavailableError{Symbol: symbol, Attempts: c.maxAttempts, Last: lastErr}
}

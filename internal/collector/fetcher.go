package collector

import (
	"context"
	"fmt"

	"StockScope/internal/model"
)

// Fetcher retrieves one year of daily OHLCV bars for a symbol from an
// upstream market-data provider.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string) ([]model.Bar, error)
	Name() string
}

// DataUnavailableError reports that upstream data for a symbol could not
// be retrieved after exhausting all retry attempts.
type DataUnavailableError struct {
	Symbol   string
	Attempts int
	Last     error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data unavailable for %s after %d attempts: %v", e.Symbol, e.Attempts, e.Last)
}

func (e *DataUnavailableError) Unwrap() error { return e.Last }

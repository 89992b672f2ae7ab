package model

import "time"

// Bar represents a single daily OHLCV bar.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// TimeSeries holds the ordered daily bars for one symbol, oldest first.
type TimeSeries struct {
	Symbol string
	Bars   []Bar
}

// Closes returns the close prices in chronological order.
func (s *TimeSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Latest returns the most recent bar. ok is false for an empty series.
func (s *TimeSeries) Latest() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Package indicator derives technical indicator columns from a price
// series. All transforms are pure with respect to the input series and
// only ever look at closes at or before the bar being computed.
package indicator

import "StockScope/internal/model"

const (
	// RSIPeriod is the default lookback for the relative strength index.
	RSIPeriod = 14
)

var maWindows = []int{20, 50, 200}

// NewFrame copies a series into an indicator frame with all derived
// columns undefined.
func NewFrame(series *model.TimeSeries) *model.IndicatorFrame {
	points := make([]model.IndicatorPoint, len(series.Bars))
	for i, b := range series.Bars {
		points[i] = model.IndicatorPoint{Bar: b}
	}
	return &model.IndicatorFrame{Symbol: series.Symbol, Points: points}
}

// AddMovingAverages fills the MA20, MA50 and MA200 columns. A window's
// value at index i is the arithmetic mean of the closes at i-w+1 .. i and
// stays undefined while fewer than w bars exist.
func AddMovingAverages(frame *model.IndicatorFrame) *model.IndicatorFrame {
	closes := frame.Closes()
	for _, w := range maWindows {
		values := rollingMean(closes, w)
		for i := range frame.Points {
			switch w {
			case 20:
				frame.Points[i].MA20 = values[i]
			case 50:
				frame.Points[i].MA50 = values[i]
			case 200:
				frame.Points[i].MA200 = values[i]
			}
		}
	}
	return frame
}

// AddRSI fills the RSI14 column. Per-bar gains and losses are averaged
// with a simple rolling mean over the period; RSI = 100 - 100/(1+RS)
// where RS = meanGain/meanLoss. A zero mean loss yields RSI 100 exactly.
// The column stays undefined until `period` deltas are available.
func AddRSI(frame *model.IndicatorFrame, period int) *model.IndicatorFrame {
	n := len(frame.Points)
	if period <= 0 || n == 0 {
		return frame
	}
	closes := frame.Closes()

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	// The first delta lives at index 1, so the first full window of
	// `period` deltas ends at bar index `period`.
	for i := period; i < n; i++ {
		var sumGain, sumLoss float64
		for j := i - period + 1; j <= i; j++ {
			sumGain += gains[j]
			sumLoss += losses[j]
		}
		meanGain := sumGain / float64(period)
		meanLoss := sumLoss / float64(period)

		var rsi float64
		if meanLoss == 0 {
			rsi = 100
		} else {
			rs := meanGain / meanLoss
			rsi = 100 - 100/(1+rs)
		}
		frame.Points[i].RSI14 = &rsi
	}
	return frame
}

// Compute builds the fully derived frame for a series: moving averages
// first, then RSI (the two are independent).
func Compute(series *model.TimeSeries) *model.IndicatorFrame {
	frame := NewFrame(series)
	AddMovingAverages(frame)
	AddRSI(frame, RSIPeriod)
	return frame
}

// rollingMean returns the trailing mean over a window, nil where fewer
// than `window` values exist yet.
func rollingMean(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			mean := sum / float64(window)
			out[i] = &mean
		}
	}
	return out
}

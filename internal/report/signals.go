package report

import (
	"errors"
	"fmt"

	"StockScope/internal/model"
)

// ErrInsufficientData is returned when a frame has fewer than the two
// bars needed to compute a day-over-day change.
var ErrInsufficientData = errors.New("insufficient data: at least 2 bars required")

// Signals holds the qualitative readings derived from the latest bar and
// its indicator columns.
type Signals struct {
	LatestClose         float64
	PriceChangePct      float64
	YearHigh            float64
	YearLow             float64
	DistanceFromHighPct float64
	// MASignals holds the short- and medium-term readings. A signal is
	// omitted entirely when its moving average is undefined rather than
	// asserting a direction against missing history.
	MASignals []string
	// RSISignal is empty when RSI is undefined for the latest bar.
	RSISignal string
}

// DeriveSignals computes the signal set over the supplied frame. The
// year high/low are taken from the frame as given, however it has been
// windowed.
func DeriveSignals(frame *model.IndicatorFrame) (*Signals, error) {
	if len(frame.Points) < 2 {
		return nil, ErrInsufficientData
	}
	latest := frame.Points[len(frame.Points)-1]
	prev := frame.Points[len(frame.Points)-2]

	sig := &Signals{
		LatestClose:    latest.Close,
		PriceChangePct: (latest.Close - prev.Close) / prev.Close * 100,
	}

	sig.YearHigh = frame.Points[0].Close
	sig.YearLow = frame.Points[0].Close
	for _, p := range frame.Points {
		if p.Close > sig.YearHigh {
			sig.YearHigh = p.Close
		}
		if p.Close < sig.YearLow {
			sig.YearLow = p.Close
		}
	}
	sig.DistanceFromHighPct = (latest.Close - sig.YearHigh) / sig.YearHigh * 100

	if latest.MA20 != nil {
		if latest.Close > *latest.MA20 {
			sig.MASignals = append(sig.MASignals, "above 20-day MA (bullish short-term)")
		} else {
			sig.MASignals = append(sig.MASignals, "below 20-day MA (bearish short-term)")
		}
	}
	if latest.MA50 != nil {
		if latest.Close > *latest.MA50 {
			sig.MASignals = append(sig.MASignals, "above 50-day MA (bullish medium-term)")
		} else {
			sig.MASignals = append(sig.MASignals, "below 50-day MA (bearish medium-term)")
		}
	}

	if latest.RSI14 != nil {
		switch rsi := *latest.RSI14; {
		case rsi > 70:
			sig.RSISignal = "overbought (RSI > 70)"
		case rsi < 30:
			sig.RSISignal = "oversold (RSI < 30)"
		default:
			sig.RSISignal = fmt.Sprintf("neutral (RSI = %.1f)", rsi)
		}
	}

	return sig, nil
}

package model

// IndicatorPoint is one bar extended with derived indicator columns.
// A nil column means the value is undefined for that date because not
// enough history exists before it. Indicators never look at future bars.
type IndicatorPoint struct {
	Bar
	MA20  *float64
	MA50  *float64
	MA200 *float64
	RSI14 *float64
}

// IndicatorFrame is a time series with derived indicator columns attached.
type IndicatorFrame struct {
	Symbol string
	Points []IndicatorPoint
}

// Closes returns the close prices in chronological order.
func (f *IndicatorFrame) Closes() []float64 {
	closes := make([]float64, len(f.Points))
	for i, p := range f.Points {
		closes[i] = p.Close
	}
	return closes
}

// Latest returns the most recent point. ok is false for an empty frame.
func (f *IndicatorFrame) Latest() (IndicatorPoint, bool) {
	if len(f.Points) == 0 {
		return IndicatorPoint{}, false
	}
	return f.Points[len(f.Points)-1], true
}

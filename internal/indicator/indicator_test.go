package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/model"
)

func seriesFromCloses(closes ...float64) *model.TimeSeries {
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1}
	}
	return &model.TimeSeries{Symbol: "TEST", Bars: bars}
}

func TestMovingAverageDefinedness(t *testing.T) {
	closes := make([]float64, 205)
	for i := range closes {
		closes[i] = float64(i + 1) // 1, 2, ... 205
	}
	frame := AddMovingAverages(NewFrame(seriesFromCloses(closes...)))

	// MA20 undefined through index 18, defined from 19.
	assert.Nil(t, frame.Points[18].MA20)
	require.NotNil(t, frame.Points[19].MA20)
	// mean(1..20) = 10.5
	assert.InDelta(t, 10.5, *frame.Points[19].MA20, 1e-9)

	assert.Nil(t, frame.Points[48].MA50)
	require.NotNil(t, frame.Points[49].MA50)

	// MA200 undefined for i < 199, defined for all i >= 199.
	assert.Nil(t, frame.Points[198].MA200)
	for i := 199; i < len(frame.Points); i++ {
		require.NotNil(t, frame.Points[i].MA200, "MA200 must be defined at index %d", i)
	}
	// mean(1..200) = 100.5
	assert.InDelta(t, 100.5, *frame.Points[199].MA200, 1e-9)
	// mean(6..205) = 105.5
	assert.InDelta(t, 105.5, *frame.Points[204].MA200, 1e-9)
}

func TestMovingAverageShortSeries(t *testing.T) {
	frame := AddMovingAverages(NewFrame(seriesFromCloses(10, 11, 12)))
	for _, p := range frame.Points {
		assert.Nil(t, p.MA20, "short series must stay undefined, not zero-filled")
		assert.Nil(t, p.MA50)
		assert.Nil(t, p.MA200)
	}
}

func TestRSIDefinedness(t *testing.T) {
	closes := make([]float64, 16)
	for i := range closes {
		closes[i] = 100 + float64(i%3)
	}
	frame := AddRSI(NewFrame(seriesFromCloses(closes...)), 14)

	for i := 0; i < 14; i++ {
		assert.Nil(t, frame.Points[i].RSI14, "RSI undefined before a full delta window, index %d", i)
	}
	require.NotNil(t, frame.Points[14].RSI14)
	require.NotNil(t, frame.Points[15].RSI14)
}

func TestRSIRollingMean(t *testing.T) {
	// closes 100,102,101,99,105 → deltas 2,-1,-2,6. With period 2 the
	// window at the last bar holds deltas (-2, 6): meanGain 3, meanLoss 1,
	// RS 3, RSI 75.
	frame := AddRSI(NewFrame(seriesFromCloses(100, 102, 101, 99, 105)), 2)

	assert.Nil(t, frame.Points[0].RSI14)
	assert.Nil(t, frame.Points[1].RSI14)

	require.NotNil(t, frame.Points[2].RSI14)
	// window deltas (2, -1): meanGain 1, meanLoss 0.5, RS 2 → 66.67
	assert.InDelta(t, 100-100.0/3, *frame.Points[2].RSI14, 1e-9)

	require.NotNil(t, frame.Points[4].RSI14)
	assert.InDelta(t, 75, *frame.Points[4].RSI14, 1e-9)
}

func TestRSIAllGainsIs100(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	frame := AddRSI(NewFrame(seriesFromCloses(closes...)), 14)

	for i := 14; i < 20; i++ {
		require.NotNil(t, frame.Points[i].RSI14)
		assert.Equal(t, 100.0, *frame.Points[i].RSI14, "all-gain window must be exactly 100, not NaN")
	}
}

func TestRSIAllLossesIsZero(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	frame := AddRSI(NewFrame(seriesFromCloses(closes...)), 14)

	for i := 14; i < 20; i++ {
		require.NotNil(t, frame.Points[i].RSI14)
		assert.Equal(t, 0.0, *frame.Points[i].RSI14)
	}
}

func TestRSIFlatSeries(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 150
	}
	frame := AddRSI(NewFrame(seriesFromCloses(closes...)), 14)
	require.NotNil(t, frame.Points[14].RSI14)
	assert.Equal(t, 100.0, *frame.Points[14].RSI14, "zero mean loss maps to 100")
}

func TestRSIBounds(t *testing.T) {
	closes := []float64{100, 104, 98, 105, 97, 110, 90, 115, 85, 120, 80, 125, 75, 130, 70, 135, 65}
	frame := AddRSI(NewFrame(seriesFromCloses(closes...)), 14)
	for _, p := range frame.Points {
		if p.RSI14 == nil {
			continue
		}
		assert.GreaterOrEqual(t, *p.RSI14, 0.0)
		assert.LessOrEqual(t, *p.RSI14, 100.0)
	}
}

func TestComputeLeavesSeriesUntouched(t *testing.T) {
	series := seriesFromCloses(100, 101, 102, 103)
	before := append([]model.Bar(nil), series.Bars...)

	frame := Compute(series)
	assert.Equal(t, before, series.Bars, "transforms must not mutate the input series")
	require.Len(t, frame.Points, 4)
	assert.Equal(t, series.Symbol, frame.Symbol)
}

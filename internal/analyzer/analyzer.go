package analyzer

import (
	"fmt"
	"time"

	"github.com/davichuder/volatility-explorer/internal/chart"
	"github.com/davichuder/volatility-explorer/internal/model"
)

// Table is the aligned result set: every series shares the return-series
// timestamp index (prices shifted by one to drop the undefined first return).
type Table struct {
	Dates   []time.Time
	Prices  []float64
	Returns []float64

	WindowStd    []float64
	WindowStdPos []float64
	WindowStdNeg []float64
	ExpandStd    []float64
	ExpandStdPos []float64
	ExpandStdNeg []float64
	GlobalStd    []float64
	GlobalStdPos []float64
	GlobalStdNeg []float64

	WindowIQR    []float64
	WindowIQRPos []float64
	WindowIQRNeg []float64
	ExpandIQR    []float64
	ExpandIQRPos []float64
	ExpandIQRNeg []float64
	GlobalIQR    []float64
	GlobalIQRPos []float64
	GlobalIQRNeg []float64
}

// ComputeTable derives returns and the 18 dispersion series from a price
// series. It is a pure function of (prices, window).
func ComputeTable(prices *model.PriceSeries, window int) (*Table, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be >= 1, got %d", window)
	}
	if prices.Len() < 2 {
		return nil, fmt.Errorf("need at least 2 price points, got %d", prices.Len())
	}

	closes := prices.Closes()
	rets := PercentReturns(closes)

	t := &Table{
		Dates:   prices.Times()[1:],
		Prices:  closes[1:],
		Returns: rets,
	}

	t.WindowStd = Rolling(rets, window, All, StdDev)
	t.WindowStdPos = Rolling(rets, window, Positive, StdDev)
	t.WindowStdNeg = Rolling(rets, window, Negative, StdDev)
	t.ExpandStd = Expanding(rets, All, StdDev)
	t.ExpandStdPos = Expanding(rets, Positive, StdDev)
	t.ExpandStdNeg = Expanding(rets, Negative, StdDev)
	t.GlobalStd = Global(rets, All, StdDev)
	t.GlobalStdPos = Global(rets, Positive, StdDev)
	t.GlobalStdNeg = Global(rets, Negative, StdDev)

	t.WindowIQR = Rolling(rets, window, All, IQR)
	t.WindowIQRPos = Rolling(rets, window, Positive, IQR)
	t.WindowIQRNeg = Rolling(rets, window, Negative, IQR)
	t.ExpandIQR = Expanding(rets, All, IQR)
	t.ExpandIQRPos = Expanding(rets, Positive, IQR)
	t.ExpandIQRNeg = Expanding(rets, Negative, IQR)
	t.GlobalIQR = Global(rets, All, IQR)
	t.GlobalIQRPos = Global(rets, Positive, IQR)
	t.GlobalIQRNeg = Global(rets, Negative, IQR)

	return t, nil
}

// Analyze turns a loaded price series and a window length into the four-panel
// dispersion figure.
func Analyze(ticker string, prices *model.PriceSeries, window int) (*chart.Figure, error) {
	t, err := ComputeTable(prices, window)
	if err != nil {
		return nil, err
	}
	return buildFigure(ticker, window, t), nil
}

package analyzer

import (
	"fmt"

	"github.com/davichuder/volatility-explorer/internal/chart"
)

// Panel domains, top to bottom: price, returns, std family, IQR family. All
// four anchor on the single shared x axis.
var panelDomains = [4][2]float64{
	{0.78, 1.00},
	{0.52, 0.74},
	{0.26, 0.48},
	{0.00, 0.22},
}

// buildFigure assembles the four-panel figure: price, returns, the 9 standard
// deviation series and the 9 IQR series, each panel under its own legend
// group and every dispersion trace dashed by scope.
func buildFigure(ticker string, window int, t *Table) *chart.Figure {
	x := chart.DateStrings(t.Dates)

	trace := func(y []float64, name, yaxis, group, groupTitle, dash, hoverLabel string) chart.Trace {
		tr := chart.Trace{
			Type:          "scatter",
			Mode:          "lines",
			X:             x,
			Y:             chart.Nullable(y),
			Name:          name,
			YAxis:         yaxis,
			XAxis:         "x",
			LegendGroup:   group,
			HoverTemplate: fmt.Sprintf("%s: %%{y:.4f}<br>Date: %%{x}<extra></extra>", hoverLabel),
		}
		if groupTitle != "" {
			tr.LegendGroupTitle = &chart.GroupTitle{Text: groupTitle}
		}
		if dash != "" {
			tr.Line = &chart.Line{Dash: dash}
		}
		return tr
	}

	data := make([]chart.Trace, 0, 20)

	price := trace(t.Prices, "Close Price", "y", "price", "Price", "", "Price")
	price.HoverTemplate = "Price: %{y:.2f}<br>Date: %{x}<extra></extra>"
	data = append(data, price)

	data = append(data, trace(t.Returns, "Daily Return", "y2", "returns", "Returns", "", "Return"))

	windowLabel := fmt.Sprintf("(%d-day window)", window)

	// Std panel.
	data = append(data,
		trace(t.WindowStd, "Std All "+windowLabel, "y3", "std", "Standard Deviation", chart.DashWindowed, "Std All"),
		trace(t.WindowStdPos, "Std Positive "+windowLabel, "y3", "std", "", chart.DashWindowed, "Std Positive"),
		trace(t.WindowStdNeg, "Std Negative "+windowLabel, "y3", "std", "", chart.DashWindowed, "Std Negative"),
		trace(t.GlobalStd, "Std Global", "y3", "std", "", chart.DashGlobal, "Std Global"),
		trace(t.GlobalStdPos, "Std Global Positive", "y3", "std", "", chart.DashGlobal, "Std Global Positive"),
		trace(t.GlobalStdNeg, "Std Global Negative", "y3", "std", "", chart.DashGlobal, "Std Global Negative"),
		trace(t.ExpandStd, "Std Expanding", "y3", "std", "", chart.DashExpanding, "Std Expanding"),
		trace(t.ExpandStdPos, "Std Expanding Positive", "y3", "std", "", chart.DashExpanding, "Std Expanding Positive"),
		trace(t.ExpandStdNeg, "Std Expanding Negative", "y3", "std", "", chart.DashExpanding, "Std Expanding Negative"),
	)

	// IQR panel.
	data = append(data,
		trace(t.WindowIQR, "IQR All "+windowLabel, "y4", "iqr", "IQR", chart.DashWindowed, "IQR All"),
		trace(t.WindowIQRPos, "IQR Positive "+windowLabel, "y4", "iqr", "", chart.DashWindowed, "IQR Positive"),
		trace(t.WindowIQRNeg, "IQR Negative "+windowLabel, "y4", "iqr", "", chart.DashWindowed, "IQR Negative"),
		trace(t.GlobalIQR, "IQR Global", "y4", "iqr", "", chart.DashGlobal, "IQR Global"),
		trace(t.GlobalIQRPos, "IQR Global Positive", "y4", "iqr", "", chart.DashGlobal, "IQR Global Positive"),
		trace(t.GlobalIQRNeg, "IQR Global Negative", "y4", "iqr", "", chart.DashGlobal, "IQR Global Negative"),
		trace(t.ExpandIQR, "IQR Expanding", "y4", "iqr", "", chart.DashExpanding, "IQR Expanding"),
		trace(t.ExpandIQRPos, "IQR Expanding Positive", "y4", "iqr", "", chart.DashExpanding, "IQR Expanding Positive"),
		trace(t.ExpandIQRNeg, "IQR Expanding Negative", "y4", "iqr", "", chart.DashExpanding, "IQR Expanding Negative"),
	)

	layout := chart.Layout{
		Title:  chart.Title{Text: fmt.Sprintf("Volatility Explorer – %s", ticker)},
		Height: 1000,
		Legend: chart.Legend{
			Orientation: "v",
			YAnchor:     "top",
			Y:           0.99,
			XAnchor:     "left",
			X:           1.02,
			GroupClick:  "togglegroup",
		},
		Margin: chart.Margin{R: 250},
		XAxis:  chart.Axis{Anchor: "y4", Domain: []float64{0, 1}},
		YAxis:  chart.Axis{Title: &chart.Title{Text: "Price"}, Domain: panelDomains[0][:]},
		YAxis2: chart.Axis{Title: &chart.Title{Text: "Returns"}, Domain: panelDomains[1][:]},
		YAxis3: chart.Axis{Title: &chart.Title{Text: "Standard Deviation"}, Domain: panelDomains[2][:]},
		YAxis4: chart.Axis{Title: &chart.Title{Text: "Interquartile Range"}, Domain: panelDomains[3][:]},
	}

	return &chart.Figure{Data: data, Layout: layout}
}

// Package chart defines the Plotly-compatible figure payload rendered by the
// dashboard page. The server never draws anything; it ships this JSON to the
// browser.
package chart

import (
	"math"
	"time"
)

// Dash patterns keyed to statistic scope, so scope stays distinguishable
// independent of trace color.
const (
	DashWindowed  = "solid"
	DashExpanding = "longdash"
	DashGlobal    = "dot"
)

// Figure is a complete figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one scatter line on the shared time axis.
type Trace struct {
	Type             string      `json:"type"`
	Mode             string      `json:"mode,omitempty"`
	X                []string    `json:"x"`
	Y                []*float64  `json:"y"`
	Name             string      `json:"name"`
	Line             *Line       `json:"line,omitempty"`
	XAxis            string      `json:"xaxis,omitempty"`
	YAxis            string      `json:"yaxis,omitempty"`
	LegendGroup      string      `json:"legendgroup,omitempty"`
	LegendGroupTitle *GroupTitle `json:"legendgrouptitle,omitempty"`
	HoverTemplate    string      `json:"hovertemplate,omitempty"`
}

// Line carries per-trace styling.
type Line struct {
	Dash string `json:"dash,omitempty"`
}

// GroupTitle labels a legend group.
type GroupTitle struct {
	Text string `json:"text"`
}

// Layout places the four stacked panels on one shared x axis.
type Layout struct {
	Title  Title   `json:"title"`
	Height int     `json:"height"`
	Legend Legend  `json:"legend"`
	Margin Margin  `json:"margin"`
	XAxis  Axis    `json:"xaxis"`
	YAxis  Axis    `json:"yaxis"`
	YAxis2 Axis    `json:"yaxis2"`
	YAxis3 Axis    `json:"yaxis3"`
	YAxis4 Axis    `json:"yaxis4"`
}

// Title is a figure or axis title.
type Title struct {
	Text string `json:"text"`
}

// Legend positions the legend beside the panels.
type Legend struct {
	Orientation string  `json:"orientation"`
	YAnchor     string  `json:"yanchor"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor"`
	X           float64 `json:"x"`
	GroupClick  string  `json:"groupclick,omitempty"`
}

// Margin reserves room for the legend column.
type Margin struct {
	R int `json:"r"`
}

// Axis is one axis of the subplot grid.
type Axis struct {
	Title  *Title    `json:"title,omitempty"`
	Domain []float64 `json:"domain,omitempty"`
	Anchor string    `json:"anchor,omitempty"`
}

// Nullable converts a series to pointers, mapping NaN (undefined positions)
// to JSON null, which Plotly renders as a gap.
func Nullable(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if math.IsNaN(values[i]) {
			continue
		}
		v := values[i]
		out[i] = &v
	}
	return out
}

// DateStrings formats timestamps as YYYY-MM-DD axis categories.
func DateStrings(times []time.Time) []string {
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = t.Format("2006-01-02")
	}
	return out
}

package analyzer

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/davichuder/volatility-explorer/internal/model"
)

func seriesFromCloses(closes []float64) *model.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{Time: start.AddDate(0, 0, i), Close: c}
	}
	return &model.PriceSeries{Ticker: "TEST", Points: points}
}

func TestComputeTable_WindowedStdAlignment(t *testing.T) {
	prices := seriesFromCloses([]float64{100, 102, 101, 105, 103, 108, 107, 110})
	table, err := ComputeTable(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(table.Returns) != 7 {
		t.Fatalf("expected 7 returns, got %d", len(table.Returns))
	}
	if len(table.Dates) != 7 || len(table.Prices) != 7 {
		t.Fatalf("dates/prices must align with returns, got %d/%d", len(table.Dates), len(table.Prices))
	}
	if !table.Dates[0].Equal(prices.Points[1].Time) {
		t.Errorf("first aligned date should be the second price date")
	}

	// Indices 0 and 1 precede a full 3-return window.
	for i := 0; i < 2; i++ {
		if !math.IsNaN(table.WindowStd[i]) {
			t.Errorf("WindowStd[%d] should be NaN, got %v", i, table.WindowStd[i])
		}
	}
	defined := 0
	for i := 2; i < len(table.WindowStd); i++ {
		if math.IsNaN(table.WindowStd[i]) {
			t.Errorf("WindowStd[%d] should be defined", i)
			continue
		}
		defined++
	}
	// len(prices) - 1 - window + 1 defined positions at the tail.
	if defined != 5 {
		t.Errorf("expected 5 defined windowed values, got %d", defined)
	}
}

func TestComputeTable_GlobalMatchesFullWindow(t *testing.T) {
	prices := seriesFromCloses([]float64{100, 102, 101, 105, 103, 108, 107, 110})
	table, err := ComputeTable(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	full := Rolling(table.Returns, len(table.Returns), All, StdDev)
	last := len(table.Returns) - 1
	if table.GlobalStd[last] != full[last] {
		t.Errorf("global std %v should equal full-window rolling std %v at the final position",
			table.GlobalStd[last], full[last])
	}
}

func TestComputeTable_SeriesLengths(t *testing.T) {
	prices := seriesFromCloses([]float64{100, 102, 101, 105, 103, 108, 107, 110})
	table, err := ComputeTable(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	series := map[string][]float64{
		"WindowStd": table.WindowStd, "WindowStdPos": table.WindowStdPos, "WindowStdNeg": table.WindowStdNeg,
		"ExpandStd": table.ExpandStd, "ExpandStdPos": table.ExpandStdPos, "ExpandStdNeg": table.ExpandStdNeg,
		"GlobalStd": table.GlobalStd, "GlobalStdPos": table.GlobalStdPos, "GlobalStdNeg": table.GlobalStdNeg,
		"WindowIQR": table.WindowIQR, "WindowIQRPos": table.WindowIQRPos, "WindowIQRNeg": table.WindowIQRNeg,
		"ExpandIQR": table.ExpandIQR, "ExpandIQRPos": table.ExpandIQRPos, "ExpandIQRNeg": table.ExpandIQRNeg,
		"GlobalIQR": table.GlobalIQR, "GlobalIQRPos": table.GlobalIQRPos, "GlobalIQRNeg": table.GlobalIQRNeg,
	}
	for name, s := range series {
		if len(s) != len(table.Returns) {
			t.Errorf("%s has %d positions, want %d", name, len(s), len(table.Returns))
		}
	}
}

func TestComputeTable_Validation(t *testing.T) {
	prices := seriesFromCloses([]float64{100, 102, 101})

	if _, err := ComputeTable(prices, 0); err == nil {
		t.Error("window 0 should be rejected")
	}
	if _, err := ComputeTable(seriesFromCloses([]float64{100}), 1); err == nil {
		t.Error("single-point series should be rejected")
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	prices := seriesFromCloses([]float64{100, 102, 101, 105, 103, 108, 107, 110})

	fig1, err := Analyze("TEST", prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fig2, err := Analyze("TEST", prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b1, err := json.Marshal(fig1)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b2, err := json.Marshal(fig2)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b1) != string(b2) {
		t.Error("two runs over identical inputs should produce identical figures")
	}
}

func TestAnalyze_FigureShape(t *testing.T) {
	prices := seriesFromCloses([]float64{100, 102, 101, 105, 103, 108, 107, 110})
	fig, err := Analyze("TEST", prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fig.Data) != 20 {
		t.Fatalf("expected 20 traces, got %d", len(fig.Data))
	}

	perAxis := map[string]int{}
	for _, tr := range fig.Data {
		perAxis[tr.YAxis]++
		if len(tr.X) != 7 || len(tr.Y) != 7 {
			t.Errorf("trace %q not aligned to the return index: %d/%d points", tr.Name, len(tr.X), len(tr.Y))
		}
	}
	want := map[string]int{"y": 1, "y2": 1, "y3": 9, "y4": 9}
	for axis, n := range want {
		if perAxis[axis] != n {
			t.Errorf("axis %s: expected %d traces, got %d", axis, n, perAxis[axis])
		}
	}

	// Undefined leading window positions marshal as null, not NaN.
	for _, tr := range fig.Data {
		if tr.Name == "Std All (3-day window)" {
			if tr.Y[0] != nil || tr.Y[1] != nil {
				t.Error("positions before the window fills should be null")
			}
			if tr.Y[2] == nil {
				t.Error("first full-window position should carry a value")
			}
		}
	}
}

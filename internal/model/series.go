package model

import "time"

// PricePoint is a single daily closing price.
type PricePoint struct {
	Time  time.Time
	Close float64
}

// PriceSeries holds the daily closes loaded for one ticker. Timestamps are
// strictly increasing, one point per trading day. A series is immutable once
// produced; a new load replaces it wholesale.
type PriceSeries struct {
	Ticker    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Len returns the number of price points.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Closes returns the close values in time order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// Times returns the timestamps in time order.
func (s *PriceSeries) Times() []time.Time {
	times := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		times[i] = p.Time
	}
	return times
}

// LoadKey identifies one load request (ticker plus date range) for
// redundancy detection. Dates are YYYY-MM-DD strings so keys compare with ==.
type LoadKey struct {
	Ticker string
	Start  string
	End    string
}

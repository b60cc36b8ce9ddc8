package collector

import (
	"time"

	"github.com/davichuder/volatility-explorer/internal/model"
)

// Fetcher defines the interface for loading daily closing prices.
type Fetcher interface {
	// FetchDailyCloses returns the daily closes for ticker over the half-open
	// range [start, end). An empty (nil, nil) result means the provider has
	// no data for the request; transport and API failures come back as errors.
	FetchDailyCloses(ticker string, start, end time.Time) ([]model.PricePoint, error)
	Name() string
}

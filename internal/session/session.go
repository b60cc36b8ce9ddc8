// Package session holds the per-user controller state behind the dashboard:
// the last load key, the loaded price series, and the last calculate
// parameters. Every user action is a synchronous call on their own session;
// sessions are never shared.
package session

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/davichuder/volatility-explorer/internal/analyzer"
	"github.com/davichuder/volatility-explorer/internal/chart"
	"github.com/davichuder/volatility-explorer/internal/collector"
	"github.com/davichuder/volatility-explorer/internal/model"
)

const dateLayout = "2006-01-02"

// Outcome classifies the result of a load or calculate action.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeNoData    Outcome = "no_data"
	OutcomeError     Outcome = "error"
	OutcomeRedundant Outcome = "redundant"
)

// Session is one interactive user's cached state.
type Session struct {
	ID string

	mu        sync.Mutex
	expiresAt time.Time

	lastLoad       *model.LoadKey
	lastLoadStatus string
	prices         *model.PriceSeries
	lastWindow     int // 0 until the first successful calculate
	lastCalcTicker string
	figure         *chart.Figure
}

// LoadResult is returned to the presentation shell after a load action.
type LoadResult struct {
	Message          string
	CalculateEnabled bool
	Points           int
	Outcome          Outcome
}

// CalculateResult is returned to the presentation shell after a calculate
// action. Figure is nil whenever the prior figure should be left unchanged.
type CalculateResult struct {
	Message string
	Updated bool
	Figure  *chart.Figure
	Outcome Outcome
}

// Load fetches daily closes for the ticker over [start, end) and caches the
// series. A repeat of the last load is answered from the cache without a
// network call.
func (s *Session) Load(f collector.Fetcher, ticker string, start, end time.Time) LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	clean := strings.ToUpper(strings.TrimSpace(ticker))
	if clean == "" {
		return LoadResult{
			Message: "Please enter a valid ticker.",
			Outcome: OutcomeInvalid,
		}
	}

	key := model.LoadKey{
		Ticker: clean,
		Start:  start.Format(dateLayout),
		End:    end.Format(dateLayout),
	}
	title := fmt.Sprintf("Ticker: %s, start: %s, end: %s.", key.Ticker, key.Start, key.End)

	if s.lastLoad != nil && *s.lastLoad == key {
		return LoadResult{
			Message:          "Data already loaded. " + title,
			CalculateEnabled: s.prices != nil,
			Points:           s.prices.Len(),
			Outcome:          OutcomeRedundant,
		}
	}

	points, err := f.FetchDailyCloses(clean, start, end)
	if err != nil {
		// Transport failure: leave the cache untouched so a retry refetches.
		return LoadResult{
			Message: fmt.Sprintf("Failed to load data: %v", err),
			Outcome: OutcomeError,
		}
	}
	if len(points) == 0 {
		// Remember the key so repeated doomed fetches short-circuit.
		s.lastLoad = &key
		s.lastLoadStatus = "Failed to load data. The ticker is invalid or has no data available."
		s.prices = nil
		return LoadResult{
			Message: s.lastLoadStatus,
			Outcome: OutcomeNoData,
		}
	}

	s.lastLoad = &key
	s.prices = &model.PriceSeries{Ticker: clean, Points: points, FetchedAt: time.Now()}
	s.lastLoadStatus = "Data loaded successfully. " + title
	return LoadResult{
		Message:          s.lastLoadStatus,
		CalculateEnabled: true,
		Points:           len(points),
		Outcome:          OutcomeOK,
	}
}

// Calculate validates the raw window input and builds the dispersion figure
// from the cached price series. Validation failures leave the prior figure
// and caches unchanged.
func (s *Session) Calculate(windowRaw string) CalculateResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastLoad == nil || s.prices == nil {
		return CalculateResult{
			Message: "Load data before calculating.",
			Outcome: OutcomeInvalid,
		}
	}

	window, err := strconv.Atoi(strings.TrimSpace(windowRaw))
	if err != nil || window < 1 {
		return CalculateResult{
			Message: "Please enter a valid whole number (minimum 1) for the window.",
			Outcome: OutcomeInvalid,
		}
	}
	if window > s.prices.Len() {
		return CalculateResult{
			Message: fmt.Sprintf("The rolling window (%d days) cannot exceed the number of loaded days (%d).",
				window, s.prices.Len()),
			Outcome: OutcomeInvalid,
		}
	}

	title := fmt.Sprintf("Ticker: %s, start: %s, end: %s. Window: %d.",
		s.lastLoad.Ticker, s.lastLoad.Start, s.lastLoad.End, window)

	if window == s.lastWindow && s.lastCalcTicker == s.lastLoad.Ticker {
		return CalculateResult{
			Message: "The chart is already up to date. " + title,
			Outcome: OutcomeRedundant,
		}
	}

	fig, err := analyzer.Analyze(s.lastLoad.Ticker, s.prices, window)
	if err != nil {
		return CalculateResult{
			Message: fmt.Sprintf("Calculation failed: %v", err),
			Outcome: OutcomeError,
		}
	}

	s.lastWindow = window
	s.lastCalcTicker = s.lastLoad.Ticker
	s.figure = fig
	return CalculateResult{
		Message: "Chart updated successfully. " + title,
		Updated: true,
		Figure:  fig,
		Outcome: OutcomeOK,
	}
}

// Ticker returns the ticker of the currently loaded series, if any.
func (s *Session) Ticker() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastLoad == nil {
		return ""
	}
	return s.lastLoad.Ticker
}

package recorder

import "time"

// LoadEvent records one load action. Only request metadata is kept; the
// loaded series itself is never persisted.
type LoadEvent struct {
	Ticker   string
	Start    string
	End      string
	Source   string
	Outcome  string
	Points   int
	Duration time.Duration
}

// CalculateEvent records one calculate action.
type CalculateEvent struct {
	Ticker    string
	WindowRaw string
	Outcome   string
	Duration  time.Duration
}

// Recorder persists request history for later analysis.
type Recorder interface {
	RecordLoad(evt *LoadEvent) error
	RecordCalculate(evt *CalculateEvent) error
	Close() error
}

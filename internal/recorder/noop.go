package recorder

// NoopRecorder discards all events. Used when no database is configured.
type NoopRecorder struct{}

// NewNoopRecorder creates a recorder that does nothing.
func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordLoad(*LoadEvent) error           { return nil }
func (n *NoopRecorder) RecordCalculate(*CalculateEvent) error { return nil }
func (n *NoopRecorder) Close() error                          { return nil }

package recorder

import (
	"time"

	"MultiplierSentinel/internal/model"
)

// ObservationEvent holds one accepted observation.
type ObservationEvent struct {
	SessionKey  string
	Observation model.Observation
	Position    int // 1-based index in the session sequence
}

// AnalysisSnapshot holds the engine output rendered for a session.
type AnalysisSnapshot struct {
	SessionKey string
	Analysis   *model.Analysis
	At         time.Time
}

// SessionEvent records a clear or an idle eviction.
type SessionEvent struct {
	SessionKey string
	EventType  string // "CLEAR" or "EVICT"
	Dropped    int    // observations discarded
}

// Recorder keeps an append-only audit trail. Nothing is read back into a session.
type Recorder interface {
	RecordObservation(evt *ObservationEvent) error
	RecordAnalysis(snap *AnalysisSnapshot) error
	RecordSessionEvent(evt *SessionEvent) error
	Close() error
}

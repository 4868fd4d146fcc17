package model

import "time"

// Observation is a single recorded round multiplier.
type Observation struct {
	Value      float64
	RecordedAt time.Time
}

// Band classifies an observation for display.
type Band string

const (
	BandLow     Band = "LOW"
	BandNeutral Band = "NEUTRAL"
	BandHigh    Band = "HIGH"
)

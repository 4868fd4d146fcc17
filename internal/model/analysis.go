package model

// Forecast is the next-round estimate with its dispersion band.
// Confidence is a percentage in [5, 99].
type Forecast struct {
	Lower      float64
	Estimate   float64
	Upper      float64
	Confidence float64
}

// PatternAlert is a rule-based motif match with a fixed probability label.
type PatternAlert struct {
	Label       string
	Probability int
}

// ConfidenceLevel maps a confidence percentage to an advisory.
type ConfidenceLevel struct {
	Label   string
	Message string
}

// Analysis is the full engine output for one sequence snapshot.
type Analysis struct {
	Count      int
	Forecast   Forecast
	Level      ConfidenceLevel
	Transition bool
	Alerts     []PatternAlert
}

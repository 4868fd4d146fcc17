package strategy

import (
	"MultiplierSentinel/internal/calculator"
	"MultiplierSentinel/internal/model"
)

// Levels maps a confidence percentage to an advisory, highest first.
var Levels = []struct {
	MinConfidence float64
	Level         model.ConfidenceLevel
}{
	{80, model.ConfidenceLevel{Label: "HIGH", Message: "High confidence: possible stable pattern or repetition."}},
	{60, model.ConfidenceLevel{Label: "GOOD", Message: "Good confidence: watch closely."}},
	{40, model.ConfidenceLevel{Label: "WEAK", Message: "Weak confidence: signs of instability."}},
}

// DefaultLevel applies below the lowest entry in Levels.
var DefaultLevel = model.ConfidenceLevel{
	Label:   "UNCERTAIN",
	Message: "High uncertainty: possible pattern transition or anomalous behaviour.",
}

// mapLevel maps a confidence percentage to a ConfidenceLevel.
func mapLevel(confidence float64) model.ConfidenceLevel {
	for _, l := range Levels {
		if confidence >= l.MinConfidence {
			return l.Level
		}
	}
	return DefaultLevel
}

// Engine runs the forecasting and pattern analyses. It holds no sequence
// state; every call recomputes from the snapshot it is given.
type Engine struct {
	// Projector supplies the trend term. When nil the weighted mean is used.
	Projector calculator.Projector
}

// NewEngine creates an Engine with the given trend projector, which may be nil.
func NewEngine(p calculator.Projector) *Engine {
	return &Engine{Projector: p}
}

// Default returns an Engine using an OLS trend projection.
func Default() *Engine {
	return NewEngine(calculator.NewLinearProjector())
}

// Evaluate runs all three analyses over a snapshot.
func (e *Engine) Evaluate(values []float64) *model.Analysis {
	f := e.Forecast(values)
	return &model.Analysis{
		Count:      len(values),
		Forecast:   f,
		Level:      mapLevel(f.Confidence),
		Transition: DetectTransition(values),
		Alerts:     AnalyzePatterns(values),
	}
}

// Classify bands a single observation value.
func Classify(v float64) model.Band {
	switch {
	case v < 1.5:
		return model.BandLow
	case v > 2.5:
		return model.BandHigh
	default:
		return model.BandNeutral
	}
}

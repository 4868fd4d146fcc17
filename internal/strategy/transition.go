package strategy

import (
	"math"

	"MultiplierSentinel/internal/calculator"
)

const (
	transitionWindow    = 5
	transitionThreshold = 1.0
)

// DetectTransition compares the last five observations with the five before
// them and reports a shift in level or volatility above the threshold.
func DetectTransition(values []float64) bool {
	n := len(values)
	if n < 2*transitionWindow {
		return false
	}
	recent := values[n-transitionWindow:]
	prior := values[n-2*transitionWindow : n-transitionWindow]

	diffMean := math.Abs(calculator.Mean(recent) - calculator.Mean(prior))
	diffStd := math.Abs(calculator.StdDev(recent) - calculator.StdDev(prior))
	return diffMean > transitionThreshold || diffStd > transitionThreshold
}

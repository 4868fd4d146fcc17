package strategy

import (
	"log"
	"math"

	"MultiplierSentinel/internal/calculator"
	"MultiplierSentinel/internal/model"
)

const (
	minForecastLen   = 5
	minTrendLen      = 6
	dispersionWindow = 10
)

// ColdStart is reported until enough observations exist to model.
var ColdStart = model.Forecast{Lower: 1.40, Estimate: 1.80, Upper: 2.10, Confidence: 30.0}

// Forecast blends the simple mean, a recency-weighted mean, and a trend
// projection, and bands the result by the trailing population stddev.
func (e *Engine) Forecast(values []float64) model.Forecast {
	if len(values) < minForecastLen {
		return ColdStart
	}

	mean := calculator.Mean(values)
	weighted := calculator.WeightedMean(values)

	trend := weighted
	if e.Projector != nil && len(values) >= minTrendLen {
		if p, err := e.Projector.Project(values); err != nil {
			log.Printf("[WARN] trend projection failed: %v, using weighted mean", err)
		} else {
			trend = p
		}
	}

	estimate := (mean + weighted + trend) / 3
	if math.IsInf(estimate, 0) {
		estimate = mean/3 + weighted/3 + trend/3
	}
	dispersion := calculator.StdDev(calculator.Tail(values, dispersionWindow))

	return model.Forecast{
		Lower:      calculator.Round(estimate-dispersion, 2),
		Estimate:   calculator.Round(estimate, 2),
		Upper:      calculator.Round(estimate+dispersion, 2),
		Confidence: calculator.Round(calculator.Clamp(100-dispersion*90, 5, 99), 1),
	}
}

package strategy

import "MultiplierSentinel/internal/model"

// Alert rules, in detection order.
var (
	AlertDrop        = model.PatternAlert{Label: "Continuous drop detected", Probability: 70}
	AlertRise        = model.PatternAlert{Label: "Continuous rise detected", Probability: 65}
	AlertAlternation = model.PatternAlert{Label: "Unstable alternation", Probability: 60}
)

// AnalyzePatterns inspects the last three observations and returns every
// matching alert. Rules are not exclusive.
func AnalyzePatterns(values []float64) []model.PatternAlert {
	alerts := []model.PatternAlert{}
	if len(values) < 3 {
		return alerts
	}
	last := values[len(values)-3:]

	if last[0] < 1.5 && last[1] < 1.5 && last[2] < 1.5 {
		alerts = append(alerts, AlertDrop)
	}
	if last[0] > 2.5 && last[1] > 2.5 && last[2] > 2.5 {
		alerts = append(alerts, AlertRise)
	}
	// a flat step has sign 0, so (0, +) counts as a flip
	if sign(last[1]-last[0]) != sign(last[2]-last[1]) {
		alerts = append(alerts, AlertAlternation)
	}
	return alerts
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

package notifier

import (
	"fmt"
	"math"
	"strings"

	"MultiplierSentinel/internal/calculator"
	"MultiplierSentinel/internal/model"
	"MultiplierSentinel/internal/strategy"
)

const (
	historyTimeLayout = "02/01/2006 15:04"
	maxBarWidth       = 20
	barUnitsPerX      = 4
)

var bandMarks = map[model.Band]string{
	model.BandLow:     "🟥",
	model.BandNeutral: "⬜",
	model.BandHigh:    "🟩",
}

// FormatHistory renders observations one per line with their band mark.
func FormatHistory(obs []model.Observation) string {
	if len(obs) == 0 {
		return "No observations yet."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📜 History (last %d)\n\n", len(obs)))
	for _, o := range obs {
		b.WriteString(fmt.Sprintf("%s %.2fx - %s\n",
			bandMarks[strategy.Classify(o.Value)], o.Value, o.RecordedAt.Format(historyTimeLayout)))
	}
	return b.String()
}

// FormatChart renders the last window values as text bars next to the
// 3-round moving average of the whole sequence.
func FormatChart(values []float64, window int) string {
	if len(values) == 0 {
		return ""
	}
	ma := calculator.MovingAverage(values, 3)
	start := len(values) - window
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 Last %d rounds (value | 3-round avg)\n\n", len(values)-start))
	for i := start; i < len(values); i++ {
		b.WriteString(fmt.Sprintf("#%-3d %-*s %6.2fx | %.2fx\n",
			i+1, maxBarWidth, bar(values[i]), values[i], ma[i]))
	}
	return b.String()
}

func bar(v float64) string {
	n := int(math.Round(v * barUnitsPerX))
	if n < 0 {
		n = 0
	}
	if n > maxBarWidth {
		n = maxBarWidth
	}
	return strings.Repeat("█", n)
}

// FormatAnalysis renders the forecast, confidence advisory, transition notice
// and pattern alerts.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder
	f := a.Forecast

	b.WriteString(fmt.Sprintf("🔮 Forecast (%d rounds)\n\n", a.Count))
	b.WriteString(fmt.Sprintf("Next estimate: between %.2fx and %.2fx\n", f.Lower, f.Upper))
	b.WriteString(fmt.Sprintf("Main estimate: %.2fx\n", f.Estimate))
	b.WriteString(fmt.Sprintf("Confidence: %.1f%%\n", f.Confidence))
	b.WriteString(a.Level.Message + "\n")

	if a.Transition {
		b.WriteString("\n⚠️ Pattern transition detected. The model is adjusting...\n")
	}
	if len(a.Alerts) > 0 {
		b.WriteString("\n")
		for _, al := range a.Alerts {
			b.WriteString(fmt.Sprintf("Alert: %s (%d%% chance)\n", al.Label, al.Probability))
		}
	}
	return b.String()
}

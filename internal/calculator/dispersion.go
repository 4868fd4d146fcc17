package calculator

import "math"

// StdDev returns the population standard deviation (divides by N).
// Empty input yields 0. Overflowing squares are recomputed on scaled values.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if d := stdDev(values); isFinite(d) {
		return d
	}
	s := maxAbs(values)
	return stdDev(scaled(values, s)) * s
}

func stdDev(values []float64) float64 {
	mean := Mean(values)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round rounds v half away from zero to the given number of decimal places.
// Magnitudes of 2^53 and above carry no fraction and are returned unchanged.
func Round(v float64, places int) float64 {
	if math.Abs(v) >= 1<<53 || !isFinite(v) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

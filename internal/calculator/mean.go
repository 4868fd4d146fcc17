package calculator

import "math"

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
// Sums that overflow are recomputed on values scaled into [-1, 1].
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if m := mean(values); isFinite(m) {
		return m
	}
	s := maxAbs(values)
	return mean(scaled(values, s)) * s
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// LinearWeights returns n weights spaced evenly from lo to hi inclusive.
// A single weight is lo.
func LinearWeights(n int, lo, hi float64) []float64 {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, n)
	if n == 1 {
		weights[0] = lo
		return weights
	}
	step := (hi - lo) / float64(n-1)
	for i := range weights {
		weights[i] = lo + step*float64(i)
	}
	weights[n-1] = hi
	return weights
}

// WeightedMean computes the mean of values weighted linearly from 1 (oldest)
// to 2 (most recent).
func WeightedMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if m := weightedMean(values); isFinite(m) {
		return m
	}
	s := maxAbs(values)
	return weightedMean(scaled(values, s)) * s
}

func weightedMean(values []float64) float64 {
	weights := LinearWeights(len(values), 1, 2)
	var sum, total float64
	for i, v := range values {
		sum += v * weights[i]
		total += weights[i]
	}
	return sum / total
}

// MovingAverage computes a trailing moving average over the given window.
// Leading positions average over however many values are available.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 0 || len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Tail returns the last n values, or all of them when fewer exist.
func Tail(values []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func maxAbs(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// scaled divides every value by s. A zero s returns values unchanged.
func scaled(values []float64, s float64) []float64 {
	if s == 0 {
		return values
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / s
	}
	return out
}

package calculator

import (
	"errors"
	"fmt"
)

// Projector fits a model to a series indexed 0..n-1 and returns its
// prediction for the next position (n).
type Projector interface {
	Project(values []float64) (float64, error)
}

// LinearProjector fits an ordinary least-squares line of value against index.
type LinearProjector struct{}

// NewLinearProjector returns an OLS projector.
func NewLinearProjector() *LinearProjector { return &LinearProjector{} }

// Project evaluates the fitted line at x = len(values).
func (LinearProjector) Project(values []float64) (float64, error) {
	n := len(values)
	if n < 2 {
		return 0, errors.New("need at least 2 points for a linear fit")
	}

	xMean := float64(n-1) / 2
	yMean := Mean(values)

	var sxy, sxx float64
	for i, y := range values {
		dx := float64(i) - xMean
		sxy += dx * (y - yMean)
		sxx += dx * dx
	}

	slope := sxy / sxx
	intercept := yMean - slope*xMean
	next := intercept + slope*float64(n)
	if !isFinite(next) {
		return 0, fmt.Errorf("linear fit is not finite: %v", next)
	}
	return next, nil
}

// Package stats provides statistical utility functions for analyzers.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Percentile calculates the p-th percentile of a sorted slice.
// The slice must already be sorted in ascending order.
// Returns 0 if the slice is empty.
func Percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// MeanStdDev returns the mean and population standard deviation of xs.
// Returns zeros for an empty slice.
func MeanStdDev(xs []float64) (mean, stddev float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	if len(xs) == 1 {
		return xs[0], 0
	}
	return stat.PopMeanStdDev(xs, nil)
}

// Fit holds the result of a simple least-squares regression.
type Fit struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"` // Goodness of fit (0-1)
}

// Predict evaluates the fitted line at x.
func (f Fit) Predict(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// LinearFit fits ys against xs. Returns a zero Fit if fewer than 2 points
// are provided or the lengths differ.
func LinearFit(xs, ys []float64) Fit {
	if len(xs) < 2 || len(xs) != len(ys) {
		return Fit{}
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		// Constant ys leave nothing to explain.
		r2 = 0
	}
	return Fit{Slope: slope, Intercept: intercept, RSquared: r2}
}

// RoundHalfUp rounds x to the nearest integer with halves rounding toward
// positive infinity.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

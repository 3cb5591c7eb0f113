package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVaRLinearInterpolation(t *testing.T) {
	dist := []float64{-100, -50, 0, 50, 100}

	// 20th percentile of five points: rank 0.8 between -100 and -50.
	assert.InDelta(t, -60, VaR(dist, 0.8), 1e-12)
}

func TestCVaRAveragesTail(t *testing.T) {
	dist := []float64{-100, -50, 0, 50, 100}

	// Only -100 sits at or below VaR80 = -60.
	assert.InDelta(t, -100, CVaR(dist, 0.8), 1e-12)

	// At 50% confidence VaR is 0 and the tail is {-100, -50, 0}.
	assert.InDelta(t, -50, CVaR(dist, 0.5), 1e-12)
}

func TestCVaRSinglePointDegenerates(t *testing.T) {
	dist := []float64{-10, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	// VaR99 lands between -10 and 1; only -10 is at or below it, so the
	// CVaR collapses to that single tail point.
	v := VaR(dist, 0.99)
	assert.InDelta(t, -9.01, v, 1e-12)
	assert.InDelta(t, -10, CVaR(dist, 0.99), 1e-12)
}

func TestVaRUnsortedInput(t *testing.T) {
	dist := []float64{50, -100, 100, 0, -50}
	assert.InDelta(t, -60, VaR(dist, 0.8), 1e-12)
}

func TestSummarizeKnownVector(t *testing.T) {
	dist := []float64{-100, -50, 0, 50, 100}
	m := Summarize(dist)

	assert.InDelta(t, 0, m.Mean, 1e-12)
	assert.InDelta(t, 0, m.Median, 1e-12)
	// Population standard deviation of the symmetric vector.
	assert.InDelta(t, 70.710678, m.Std, 1e-6)
	assert.InDelta(t, -90, m.VaR95, 1e-12)
	assert.InDelta(t, -98, m.VaR99, 1e-12)
	assert.InDelta(t, -100, m.CVaR95, 1e-12)
	assert.InDelta(t, -100, m.CVaR99, 1e-12)
}

func TestSummarizeConstantDistribution(t *testing.T) {
	dist := []float64{42, 42, 42, 42}
	m := Summarize(dist)

	assert.Equal(t, 42.0, m.Mean)
	assert.Equal(t, 42.0, m.Median)
	assert.Equal(t, 0.0, m.Std)
	assert.Equal(t, 42.0, m.VaR95)
	assert.Equal(t, 42.0, m.CVaR99)
}

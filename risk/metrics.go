// Package risk reduces an NPV distribution to summary and tail-risk
// statistics.
package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Metrics summarizes one NPV distribution. VaR and CVaR follow the raw
// NPV sign convention: more negative means worse.
type Metrics struct {
	Mean   float64
	Median float64
	Std    float64
	VaR95  float64
	VaR99  float64
	CVaR95 float64
	CVaR99 float64
}

// Summarize computes the full metrics set for a non-empty distribution.
func Summarize(dist []float64) Metrics {
	return Metrics{
		Mean:   stat.Mean(dist, nil),
		Median: percentile(dist, 0.5),
		Std:    stat.PopStdDev(dist, nil),
		VaR95:  VaR(dist, 0.95),
		VaR99:  VaR(dist, 0.99),
		CVaR95: CVaR(dist, 0.95),
		CVaR99: CVaR(dist, 0.99),
	}
}

// VaR returns the (1-confidence) quantile of the distribution, the
// outcome exceeded in `confidence` of scenarios.
func VaR(dist []float64, confidence float64) float64 {
	return percentile(dist, 1-confidence)
}

// CVaR returns the mean of all outcomes at or below the VaR threshold.
// When the threshold selects a single point the CVaR degenerates to that
// point's value.
func CVaR(dist []float64, confidence float64) float64 {
	threshold := VaR(dist, confidence)
	sum, n := 0.0, 0
	for _, v := range dist {
		if v <= threshold {
			sum += v
			n++
		}
	}
	if n == 0 {
		return threshold
	}
	return sum / float64(n)
}

// percentile is the linearly interpolated p-quantile: with the sorted
// sample indexed 0..n-1, the quantile sits at rank (n-1)*p and
// interpolates between the bracketing order statistics. gonum's
// stat.Quantile steps on the empirical CDF instead, which does not match
// this contract.
func percentile(dist []float64, p float64) float64 {
	if len(dist) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(dist))
	copy(sorted, dist)
	sort.Float64s(sorted)

	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

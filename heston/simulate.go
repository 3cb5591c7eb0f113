package heston

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// StepsPerYear is the simulation granularity (daily on a trading calendar).
const StepsPerYear = 252

// Dt is the simulation time step in years.
const Dt = 1.0 / StepsPerYear

// Ensemble holds simulated rate and variance paths on a shared time grid.
// Rates[i][j] is the exchange rate of scenario j at step i; Vars is the
// parallel instantaneous-variance grid driven by the same draws. The
// variance state may go negative under the Euler scheme; only the values
// used in drift and diffusion terms are floored at zero.
type Ensemble struct {
	Rates [][]float64
	Vars  [][]float64
	Steps int
	Sims  int
}

// SimulatePaths advances all scenarios jointly with a log-Euler step for
// the rate and an Euler step for the variance. The two per-step shocks are
// correlated through rho. A fixed seed makes reruns bit-identical.
func SimulatePaths(spot float64, p Params, rd, rf, years float64, sims int, seed uint64) *Ensemble {
	steps := stepIndex(years)

	rates := make([][]float64, steps+1)
	variances := make([][]float64, steps+1)
	for i := range rates {
		rates[i] = make([]float64, sims)
		variances[i] = make([]float64, sims)
	}
	for j := 0; j < sims; j++ {
		rates[0][j] = spot
		variances[0][j] = p.V0
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}
	z1 := make([]float64, sims)
	z2 := make([]float64, sims)

	rhoComp := math.Sqrt(1 - p.Rho*p.Rho)
	sqrtDt := math.Sqrt(Dt)

	for i := 1; i <= steps; i++ {
		// One full vector of rate shocks, then one of variance shocks, so
		// the draw order is stable regardless of scenario count changes
		// elsewhere in the loop body.
		for j := range z1 {
			z1[j] = normal.Rand()
		}
		for j := range z2 {
			z2[j] = normal.Rand()
		}

		prevR := rates[i-1]
		prevV := variances[i-1]
		curR := rates[i]
		curV := variances[i]

		for j := 0; j < sims; j++ {
			dwSpot := z1[j]
			dwVar := p.Rho*z1[j] + rhoComp*z2[j]

			v := math.Max(prevV[j], 0)

			drift := (rd - rf - 0.5*v) * Dt
			diffusion := math.Sqrt(v) * sqrtDt * dwSpot
			curR[j] = prevR[j] * math.Exp(drift+diffusion)

			curV[j] = prevV[j] + p.Kappa*(p.Theta-v)*Dt + p.Xi*math.Sqrt(v)*sqrtDt*dwVar
		}
	}

	return &Ensemble{Rates: rates, Vars: variances, Steps: steps, Sims: sims}
}

// RatesAt returns the simulated rate vector at the step nearest to the
// given year offset, clamped to the final step. Settlement dates off the
// daily grid snap to their closest simulated step rather than truncating,
// so a date a few hours past a step does not fall back a full day.
func (e *Ensemble) RatesAt(years float64) []float64 {
	step := stepIndex(years)
	if step > e.Steps {
		step = e.Steps
	}
	return e.Rates[step]
}

// stepIndex maps a year offset to the nearest discrete step.
func stepIndex(years float64) int {
	return int(math.Round(years * StepsPerYear))
}

// SimulateForDates runs one simulation long enough to cover every
// settlement date and extracts the rate vector at each of them into a
// date-keyed scenario set. The full grid is released once the per-date
// slices are taken.
func SimulateForDates(spot float64, p Params, rd, rf float64, analysis time.Time, dates []time.Time, sims int, seed uint64) map[time.Time][]float64 {
	maxYears := 0.0
	for _, d := range dates {
		if y := yearOffset(analysis, d); y > maxYears {
			maxYears = y
		}
	}

	ens := SimulatePaths(spot, p, rd, rf, maxYears, sims, seed)

	scenarios := make(map[time.Time][]float64, len(dates))
	for _, d := range dates {
		scenarios[d] = ens.RatesAt(yearOffset(analysis, d))
	}
	return scenarios
}

// yearOffset is the elapsed calendar time from analysis to d in years on
// an ACT/365 basis.
func yearOffset(analysis, d time.Time) float64 {
	return d.Sub(analysis).Hours() / 24 / 365.0
}

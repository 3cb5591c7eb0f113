package heston

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/optimize"

	"github.com/rustyeddy/fxhedge/curve"
)

// penalty is the objective value assigned to parameter sets outside the
// valid region, steering the optimizer back inside without raising.
const penalty = 1e10

// bound is an inclusive parameter range used during calibration.
type bound struct{ lo, hi float64 }

var calibrationBounds = [5]bound{
	{0.001, 0.5},  // v0
	{0.1, 10},     // kappa
	{0.001, 0.5},  // theta
	{0.01, 2},     // xi
	{-0.99, 0.99}, // rho
}

// initialGuess is the fixed calibration starting point. The fit is a local
// one from this point; it is not guaranteed globally optimal.
var initialGuess = []float64{0.04, 2.0, 0.04, 0.3, -0.7}

// Minimizer runs a bounded scalar minimization of f from x0 and returns
// the minimizing point. The objective handles bounds internally via
// penalties, so any derivative-free local method satisfies the contract.
type Minimizer interface {
	Minimize(f func([]float64) float64, x0 []float64) ([]float64, error)
}

// NelderMead minimizes with gonum's Nelder-Mead simplex method.
type NelderMead struct{}

func (NelderMead) Minimize(f func([]float64) float64, x0 []float64) ([]float64, error) {
	problem := optimize.Problem{Func: f}
	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("heston: minimize: %w", err)
	}
	return result.X, nil
}

// Calibrate fits the process parameters so the model ATM volatility term
// structure matches the observed market ATM vols, by least squares over
// the quoted maturities. spot, rd and rf are accepted for interface
// completeness with richer objectives; the ATM approximation depends only
// on the variance dynamics.
func Calibrate(spot float64, atmVols map[float64]float64, rd, rf float64) (Params, error) {
	return CalibrateWith(NelderMead{}, spot, atmVols, rd, rf)
}

// CalibrateFromSurface calibrates against the quoted nodes of a vol term
// structure.
func CalibrateFromSurface(spot float64, vols *curve.VolSurface, rd, rf float64) (Params, error) {
	m := make(map[float64]float64)
	for _, pt := range vols.Points() {
		m[pt.Maturity] = pt.Value
	}
	return Calibrate(spot, m, rd, rf)
}

// CalibrateWith is Calibrate with a caller-supplied minimizer.
func CalibrateWith(opt Minimizer, spot float64, atmVols map[float64]float64, rd, rf float64) (Params, error) {
	maturities := make([]float64, 0, len(atmVols))
	for m := range atmVols {
		maturities = append(maturities, m)
	}
	sort.Float64s(maturities)

	objective := func(x []float64) float64 {
		for i, b := range calibrationBounds {
			if x[i] < b.lo || x[i] > b.hi {
				return penalty
			}
		}
		p := Params{V0: x[0], Kappa: x[1], Theta: x[2], Xi: x[3], Rho: x[4]}
		if p.Validate() != nil {
			return penalty
		}

		sse := 0.0
		for _, m := range maturities {
			diff := p.ATMVol(m) - atmVols[m]
			sse += diff * diff
		}
		return sse
	}

	x, err := opt.Minimize(objective, initialGuess)
	if err != nil {
		return Params{}, err
	}

	fitted := Params{V0: x[0], Kappa: x[1], Theta: x[2], Xi: x[3], Rho: x[4]}
	if err := fitted.Validate(); err != nil {
		return Params{}, fmt.Errorf("calibration converged to an infeasible point: %w", err)
	}
	return fitted, nil
}

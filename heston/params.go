// Package heston simulates and calibrates a Heston stochastic-volatility
// process for an exchange rate.
package heston

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when a parameter set is outside the
// economically valid region.
var ErrInvalidParams = errors.New("heston: invalid parameters")

// Params holds the five Heston process parameters.
type Params struct {
	V0    float64 // initial instantaneous variance
	Kappa float64 // mean-reversion speed of variance
	Theta float64 // long-run variance
	Xi    float64 // volatility of variance
	Rho   float64 // correlation between rate and variance shocks
}

// Validate reports whether the parameter set is economically valid:
// positive variance parameters, |rho| < 1 and the Feller condition
// 2*kappa*theta >= xi^2.
func (p Params) Validate() error {
	if p.V0 <= 0 || p.Kappa <= 0 || p.Theta <= 0 || p.Xi <= 0 {
		return fmt.Errorf("%w: v0, kappa, theta and xi must be positive (%+v)", ErrInvalidParams, p)
	}
	if math.Abs(p.Rho) >= 1 {
		return fmt.Errorf("%w: |rho| must be below 1, got %.4f", ErrInvalidParams, p.Rho)
	}
	if 2*p.Kappa*p.Theta < p.Xi*p.Xi {
		return fmt.Errorf("%w: Feller condition 2*kappa*theta >= xi^2 violated (%.6f < %.6f)",
			ErrInvalidParams, 2*p.Kappa*p.Theta, p.Xi*p.Xi)
	}
	return nil
}

// ATMVol returns the model-implied ATM volatility at maturity years under
// the parameter set. This is the closed-form approximation driven only by
// the variance dynamics: the average expected variance over [0, T].
func (p Params) ATMVol(years float64) float64 {
	decay := (1 - math.Exp(-p.Kappa*years)) / (p.Kappa * years)
	return math.Sqrt(p.V0*decay + p.Theta*(1-decay))
}

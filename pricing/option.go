// Package pricing values European FX options in closed form.
//
// The model is Garman-Kohlhagen: the domestic rate discounts the payoff and
// the foreign rate acts as a continuous yield on the underlying currency.
package pricing

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidInput is returned for degenerate pricing inputs.
var ErrInvalidInput = errors.New("pricing: invalid input")

// Kind selects the option payoff direction.
type Kind string

const (
	Call Kind = "call"
	Put  Kind = "put"
)

// Option returns the premium of a European option on an exchange rate.
//
// spot and strike are quoted in domestic per foreign unit, expiry is the
// time to expiry in years, rd and rf are the continuously compounded
// domestic and foreign rates, and vol is the annualized volatility.
// Non-positive expiry or volatility fails fast rather than producing NaN.
func Option(spot, strike, expiry, rd, rf, vol float64, kind Kind) (float64, error) {
	if expiry <= 0 {
		return 0, fmt.Errorf("%w: time to expiry must be positive, got %.6f", ErrInvalidInput, expiry)
	}
	if vol <= 0 {
		return 0, fmt.Errorf("%w: volatility must be positive, got %.6f", ErrInvalidInput, vol)
	}
	if spot <= 0 || strike <= 0 {
		return 0, fmt.Errorf("%w: spot and strike must be positive (spot=%.6f strike=%.6f)",
			ErrInvalidInput, spot, strike)
	}

	sqrtT := math.Sqrt(expiry)
	d1 := (math.Log(spot/strike) + (rd-rf+0.5*vol*vol)*expiry) / (vol * sqrtT)
	d2 := d1 - vol*sqrtT

	dfDomestic := math.Exp(-rd * expiry)
	dfForeign := math.Exp(-rf * expiry)

	switch kind {
	case Call:
		return spot*dfForeign*distuv.UnitNormal.CDF(d1) - strike*dfDomestic*distuv.UnitNormal.CDF(d2), nil
	case Put:
		return strike*dfDomestic*distuv.UnitNormal.CDF(-d2) - spot*dfForeign*distuv.UnitNormal.CDF(-d1), nil
	default:
		return 0, fmt.Errorf("%w: unknown option kind %q", ErrInvalidInput, kind)
	}
}

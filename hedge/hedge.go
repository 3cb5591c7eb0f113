// Package hedge implements static hedge overlays on a schedule of
// foreign-currency cash flows: forward locks, protective puts and collars.
//
// Overlays are decided at the analysis date and never rebalanced. Each one
// transforms the simulated exchange rates of the positive (exposed) flows;
// negative flows always settle at the simulated rate.
package hedge

import (
	"fmt"
	"time"

	"github.com/rustyeddy/fxhedge/curve"
	"github.com/rustyeddy/fxhedge/valuation"
)

// Overlay is a static hedge that can price its upfront cost and produce a
// hedged NPV distribution from a scenario set.
type Overlay interface {
	Name() string
	Cost() float64
	NPV(valuation.ScenarioSet) ([]float64, error)
}

// Inputs collects the shared market state every overlay is built from.
type Inputs struct {
	Spot     float64
	Vols     *curve.VolSurface
	Schedule valuation.Schedule
	Domestic *curve.Curve
	Foreign  *curve.Curve
	Analysis time.Time
}

// scenarioRates fetches the rate vector for a settlement date, holding
// the overlays to the same contract as unhedged valuation: a missing date
// or a scenario-count mismatch is an error, never a panic.
func scenarioRates(scenarios valuation.ScenarioSet, d time.Time, sims int) ([]float64, error) {
	rates, ok := scenarios[d]
	if !ok {
		return nil, fmt.Errorf("%w: %s", valuation.ErrMissingScenario, d.Format("2006-01-02"))
	}
	if len(rates) != sims {
		return nil, fmt.Errorf("%w: %s has %d scenarios, want %d",
			valuation.ErrMissingScenario, d.Format("2006-01-02"), len(rates), sims)
	}
	return rates, nil
}

// maturity is the option/forward tenor of a settlement date in years.
// Hedge instruments accrue on an ACT/365.25 basis, distinct from the
// ACT/365 discounting basis used for unhedged valuation.
func maturity(analysis, d time.Time) float64 {
	return d.Sub(analysis).Hours() / 24 / 365.25
}

// Package valuation turns simulated exchange-rate scenarios and a
// cash-flow schedule into a distribution of discounted outcomes.
package valuation

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/rustyeddy/fxhedge/curve"
)

// ErrMissingScenario is returned when a cash-flow date has no simulated
// rate vector.
var ErrMissingScenario = errors.New("valuation: missing scenario for date")

// Flow is one scheduled cash amount. Positive notionals are inflows in the
// exposure currency converted at the simulated rate; negative notionals
// are outflows that still settle at the simulated rate under the current
// sign convention.
type Flow struct {
	Date     time.Time
	Notional float64
}

// Schedule is an ordered set of cash flows, fixed for a run.
type Schedule []Flow

// Dates returns the settlement dates in schedule order.
func (s Schedule) Dates() []time.Time {
	dates := make([]time.Time, len(s))
	for i, f := range s {
		dates[i] = f.Date
	}
	return dates
}

// ScenarioSet maps each settlement date to its N simulated exchange rates.
type ScenarioSet map[time.Time][]float64

// Sims returns the scenario count, zero for an empty set.
func (s ScenarioSet) Sims() int {
	for _, rates := range s {
		return len(rates)
	}
	return 0
}

// NPV discounts every flow across all scenarios and sums elementwise,
// producing one present value per scenario. Discounting uses the curve
// rate at each flow's year offset on an ACT/365 basis. Every scheduled
// date must be present in the scenario set.
func NPV(scenarios ScenarioSet, schedule Schedule, discount *curve.Curve, analysis time.Time) ([]float64, error) {
	npv := make([]float64, scenarios.Sims())

	for _, flow := range schedule {
		rates, ok := scenarios[flow.Date]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingScenario, flow.Date.Format("2006-01-02"))
		}
		if len(rates) != len(npv) {
			return nil, fmt.Errorf("%w: %s has %d scenarios, want %d",
				ErrMissingScenario, flow.Date.Format("2006-01-02"), len(rates), len(npv))
		}

		years := YearFraction(analysis, flow.Date)
		df := curve.Discount(discount, years)
		floats.AddScaled(npv, flow.Notional*df, rates)
	}

	return npv, nil
}

// YearFraction is the elapsed time from analysis to d in years on an
// ACT/365 basis, the convention used for discounting.
func YearFraction(analysis, d time.Time) float64 {
	return d.Sub(analysis).Hours() / 24 / 365.0
}

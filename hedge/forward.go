package hedge

import (
	"math"
	"time"

	"github.com/rustyeddy/fxhedge/valuation"
)

// Forward locks a forward rate for every positive flow via covered
// interest-rate parity. It carries no upfront premium; its effect shows up
// entirely as the difference between hedged and unhedged distributions.
type Forward struct {
	in     Inputs
	locked map[time.Time]float64
}

// NewForward prices the forward locks off the two curves.
func NewForward(in Inputs) *Forward {
	locked := make(map[time.Time]float64)
	for _, flow := range in.Schedule {
		if flow.Notional <= 0 {
			continue
		}
		t := maturity(in.Analysis, flow.Date)
		rd := in.Domestic.Rate(t)
		rf := in.Foreign.Rate(t)
		locked[flow.Date] = in.Spot * math.Exp((rd-rf)*t)
	}
	return &Forward{in: in, locked: locked}
}

func (f *Forward) Name() string { return "forward" }

// Cost is zero: a forward exchanges at the locked rate with no premium.
func (f *Forward) Cost() float64 { return 0 }

// LockedRate returns the contracted forward rate for a hedged date.
func (f *Forward) LockedRate(d time.Time) (float64, bool) {
	r, ok := f.locked[d]
	return r, ok
}

// NPV replaces the simulated rate at every locked date with the constant
// forward rate, then values the schedule like the unhedged case.
func (f *Forward) NPV(scenarios valuation.ScenarioSet) ([]float64, error) {
	hedged := make(valuation.ScenarioSet, len(scenarios))
	for date, rates := range scenarios {
		if lock, ok := f.locked[date]; ok {
			fixed := make([]float64, len(rates))
			for i := range fixed {
				fixed[i] = lock
			}
			hedged[date] = fixed
		} else {
			hedged[date] = rates
		}
	}
	return valuation.NPV(hedged, f.in.Schedule, f.in.Domestic, f.in.Analysis)
}

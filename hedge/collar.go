package hedge

import (
	"fmt"
	"math"

	"github.com/rustyeddy/fxhedge/pricing"
	"github.com/rustyeddy/fxhedge/valuation"
)

// Collar buys an OTM put and sells an OTM call per positive flow, bounding
// the conversion rate in [put strike, call strike]. The sold call finances
// most of the put, so the tracked cost is the net premium.
type Collar struct {
	in         Inputs
	putStrike  float64
	callStrike float64
	netCost    float64
}

// NewCollar prices the collar legs with strikes at putLevel and callLevel
// times spot (e.g. 0.95 and 1.05).
func NewCollar(in Inputs, putLevel, callLevel float64) (*Collar, error) {
	c := &Collar{
		in:         in,
		putStrike:  in.Spot * putLevel,
		callStrike: in.Spot * callLevel,
	}

	for _, flow := range in.Schedule {
		if flow.Notional <= 0 {
			continue
		}
		t := maturity(in.Analysis, flow.Date)
		rd := in.Domestic.Rate(t)
		rf := in.Foreign.Rate(t)
		vol := in.Vols.Vol(t)

		put, err := pricing.Option(in.Spot, c.putStrike, t, rd, rf, vol, pricing.Put)
		if err != nil {
			return nil, fmt.Errorf("price collar put for %s: %w", flow.Date.Format("2006-01-02"), err)
		}
		call, err := pricing.Option(in.Spot, c.callStrike, t, rd, rf, vol, pricing.Call)
		if err != nil {
			return nil, fmt.Errorf("price collar call for %s: %w", flow.Date.Format("2006-01-02"), err)
		}

		c.netCost += math.Abs(flow.Notional) * (put - call)
	}
	return c, nil
}

func (c *Collar) Name() string { return "collar" }

// Cost is the accumulated net premium (put cost minus call proceeds). It
// is negative when the sold calls bring in more than the puts cost.
func (c *Collar) Cost() float64 { return c.netCost }

// Strikes returns the collar's put and call strikes.
func (c *Collar) Strikes() (put, call float64) {
	return c.putStrike, c.callStrike
}

// NPV clamps each positive flow's simulated rate into the strike band,
// discounts on the hedge tenor basis and subtracts the net cost.
func (c *Collar) NPV(scenarios valuation.ScenarioSet) ([]float64, error) {
	npv := make([]float64, scenarios.Sims())

	for _, flow := range c.in.Schedule {
		rates, err := scenarioRates(scenarios, flow.Date, len(npv))
		if err != nil {
			return nil, err
		}

		t := maturity(c.in.Analysis, flow.Date)
		df := math.Exp(-c.in.Domestic.Rate(t) * t)

		if flow.Notional > 0 {
			for i, r := range rates {
				clamped := math.Min(math.Max(r, c.putStrike), c.callStrike)
				npv[i] += flow.Notional * clamped * df
			}
		} else {
			for i, r := range rates {
				npv[i] += flow.Notional * r * df
			}
		}
	}

	for i := range npv {
		npv[i] -= c.netCost
	}
	return npv, nil
}

package hedge

import (
	"fmt"
	"math"

	"github.com/rustyeddy/fxhedge/pricing"
	"github.com/rustyeddy/fxhedge/valuation"
)

// ProtectivePut buys an ATM put per positive flow, flooring the conversion
// rate at spot while keeping the upside. The premium is paid upfront and
// subtracted from the aggregate NPV.
type ProtectivePut struct {
	in      Inputs
	premium float64
}

// NewProtectivePut prices the puts at construction.
func NewProtectivePut(in Inputs) (*ProtectivePut, error) {
	premium := 0.0
	for _, flow := range in.Schedule {
		if flow.Notional <= 0 {
			continue
		}
		t := maturity(in.Analysis, flow.Date)
		rd := in.Domestic.Rate(t)
		rf := in.Foreign.Rate(t)
		vol := in.Vols.Vol(t)

		put, err := pricing.Option(in.Spot, in.Spot, t, rd, rf, vol, pricing.Put)
		if err != nil {
			return nil, fmt.Errorf("price put for %s: %w", flow.Date.Format("2006-01-02"), err)
		}
		premium += flow.Notional * put
	}
	return &ProtectivePut{in: in, premium: premium}, nil
}

func (p *ProtectivePut) Name() string { return "put" }

// Cost is the total premium paid for all puts.
func (p *ProtectivePut) Cost() float64 { return p.premium }

// NPV floors each positive flow's simulated rate at spot, discounts on the
// hedge tenor basis and subtracts the upfront premium.
func (p *ProtectivePut) NPV(scenarios valuation.ScenarioSet) ([]float64, error) {
	npv := make([]float64, scenarios.Sims())

	for _, flow := range p.in.Schedule {
		rates, err := scenarioRates(scenarios, flow.Date, len(npv))
		if err != nil {
			return nil, err
		}

		t := maturity(p.in.Analysis, flow.Date)
		df := math.Exp(-p.in.Domestic.Rate(t) * t)

		if flow.Notional > 0 {
			for i, r := range rates {
				npv[i] += flow.Notional * math.Max(r, p.in.Spot) * df
			}
		} else {
			for i, r := range rates {
				npv[i] += flow.Notional * r * df
			}
		}
	}

	for i := range npv {
		npv[i] -= p.premium
	}
	return npv, nil
}

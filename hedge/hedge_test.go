package hedge

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/fxhedge/curve"
	"github.com/rustyeddy/fxhedge/heston"
	"github.com/rustyeddy/fxhedge/valuation"
)

var analysisDate = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

func flatCurve(t *testing.T, rate float64) *curve.Curve {
	t.Helper()
	c, err := curve.New([]curve.Point{
		{Maturity: 0.25, Value: rate},
		{Maturity: 30, Value: rate},
	})
	require.NoError(t, err)
	return c
}

func flatVols(t *testing.T, vol float64) *curve.VolSurface {
	t.Helper()
	s, err := curve.NewVolSurface([]curve.Point{
		{Maturity: 1, Value: vol},
		{Maturity: 5, Value: vol},
	})
	require.NoError(t, err)
	return s
}

func testInputs(t *testing.T, schedule valuation.Schedule) Inputs {
	t.Helper()
	return Inputs{
		Spot:     1.10,
		Vols:     flatVols(t, 0.08),
		Schedule: schedule,
		Domestic: flatCurve(t, 0.04),
		Foreign:  flatCurve(t, 0.02),
		Analysis: analysisDate,
	}
}

func simulatedScenarios(t *testing.T, in Inputs, sims int) valuation.ScenarioSet {
	t.Helper()
	p := heston.Params{V0: 0.0064, Kappa: 2.0, Theta: 0.0064, Xi: 0.1, Rho: -0.5}
	require.NoError(t, p.Validate())
	raw := heston.SimulateForDates(in.Spot, p, 0.04, 0.02, in.Analysis, in.Schedule.Dates(), sims, 42)
	return valuation.ScenarioSet(raw)
}

func TestForwardLockedRatesFollowParity(t *testing.T) {
	date := analysisDate.AddDate(1, 0, 0)
	in := testInputs(t, valuation.Schedule{{Date: date, Notional: 1_000_000}})

	f := NewForward(in)
	assert.Equal(t, 0.0, f.Cost())

	lock, ok := f.LockedRate(date)
	require.True(t, ok)
	tm := maturity(analysisDate, date)
	assert.InDelta(t, 1.10*math.Exp((0.04-0.02)*tm), lock, 1e-12)
}

func TestForwardSkipsOutflows(t *testing.T) {
	date := analysisDate.AddDate(0, 2, 0)
	in := testInputs(t, valuation.Schedule{{Date: date, Notional: -10_000_000}})

	f := NewForward(in)
	_, ok := f.LockedRate(date)
	assert.False(t, ok)
}

func TestForwardRemovesRateUncertainty(t *testing.T) {
	date := analysisDate.AddDate(1, 0, 0)
	in := testInputs(t, valuation.Schedule{{Date: date, Notional: 10_000_000}})
	scenarios := simulatedScenarios(t, in, 5000)

	unhedged, err := valuation.NPV(scenarios, in.Schedule, in.Domestic, in.Analysis)
	require.NoError(t, err)
	hedged, err := NewForward(in).NPV(scenarios)
	require.NoError(t, err)

	assert.Greater(t, stat.PopStdDev(unhedged, nil), 0.0)
	assert.InDelta(t, 0.0, stat.PopStdDev(hedged, nil), 1e-6,
		"a single fully-locked date leaves no residual exposure")
}

func TestProtectivePutFloorsDownside(t *testing.T) {
	date := analysisDate.AddDate(1, 0, 0)
	in := testInputs(t, valuation.Schedule{{Date: date, Notional: 1_000_000}})

	p, err := NewProtectivePut(in)
	require.NoError(t, err)
	assert.Greater(t, p.Cost(), 0.0)

	// One crashed scenario, one rally.
	scenarios := valuation.ScenarioSet{date: []float64{0.90, 1.30}}
	npv, err := p.NPV(scenarios)
	require.NoError(t, err)

	tm := maturity(analysisDate, date)
	df := math.Exp(-0.04 * tm)
	floored := 1_000_000*1.10*df - p.Cost()
	upside := 1_000_000*1.30*df - p.Cost()
	assert.InDelta(t, floored, npv[0], 1e-6, "downside converts at spot")
	assert.InDelta(t, upside, npv[1], 1e-6, "upside is retained")
}

func TestProtectivePutLeavesOutflowsUnprotected(t *testing.T) {
	inDate := analysisDate.AddDate(1, 0, 0)
	outDate := analysisDate.AddDate(0, 2, 0)
	in := testInputs(t, valuation.Schedule{
		{Date: outDate, Notional: -10_000_000},
		{Date: inDate, Notional: 1_000_000},
	})

	p, err := NewProtectivePut(in)
	require.NoError(t, err)

	scenarios := valuation.ScenarioSet{
		inDate:  []float64{0.90},
		outDate: []float64{0.90},
	}
	npv, err := p.NPV(scenarios)
	require.NoError(t, err)

	tIn := maturity(analysisDate, inDate)
	tOut := maturity(analysisDate, outDate)
	want := 1_000_000*1.10*math.Exp(-0.04*tIn) +
		-10_000_000*0.90*math.Exp(-0.04*tOut) -
		p.Cost()
	assert.InDelta(t, want, npv[0], 1e-4)
}

func TestCollarStrikesAndCost(t *testing.T) {
	date := analysisDate.AddDate(1, 0, 0)
	in := testInputs(t, valuation.Schedule{{Date: date, Notional: 1_000_000}})

	c, err := NewCollar(in, 0.95, 1.05)
	require.NoError(t, err)

	put, call := c.Strikes()
	assert.InDelta(t, 1.045, put, 1e-12)
	assert.InDelta(t, 1.155, call, 1e-12)
	// Net premium is small relative to an outright put on the same flow.
	p, err := NewProtectivePut(in)
	require.NoError(t, err)
	assert.Less(t, math.Abs(c.Cost()), p.Cost())
}

func TestCollarClampsIntoBand(t *testing.T) {
	date := analysisDate.AddDate(1, 0, 0)
	in := testInputs(t, valuation.Schedule{{Date: date, Notional: 1_000_000}})

	c, err := NewCollar(in, 0.95, 1.05)
	require.NoError(t, err)

	scenarios := valuation.ScenarioSet{date: []float64{0.80, 1.10, 1.40}}
	npv, err := c.NPV(scenarios)
	require.NoError(t, err)

	tm := maturity(analysisDate, date)
	df := math.Exp(-0.04 * tm)
	put, call := c.Strikes()
	assert.InDelta(t, 1_000_000*put*df-c.Cost(), npv[0], 1e-6)
	assert.InDelta(t, 1_000_000*1.10*df-c.Cost(), npv[1], 1e-6)
	assert.InDelta(t, 1_000_000*call*df-c.Cost(), npv[2], 1e-6)
}

func TestCollarMeanBetweenUnhedgedAndForward(t *testing.T) {
	date := analysisDate.AddDate(1, 0, 0)
	in := testInputs(t, valuation.Schedule{{Date: date, Notional: 10_000_000}})
	scenarios := simulatedScenarios(t, in, 10000)

	unhedged, err := valuation.NPV(scenarios, in.Schedule, in.Domestic, in.Analysis)
	require.NoError(t, err)
	fwd, err := NewForward(in).NPV(scenarios)
	require.NoError(t, err)
	c, err := NewCollar(in, 0.95, 1.05)
	require.NoError(t, err)
	col, err := c.NPV(scenarios)
	require.NoError(t, err)

	mu := stat.Mean(unhedged, nil)
	mf := stat.Mean(fwd, nil)
	mc := stat.Mean(col, nil)

	lo, hi := math.Min(mu, mf), math.Max(mu, mf)
	assert.Greater(t, mc, lo-math.Abs(lo)*0.01)
	assert.Less(t, mc, hi+math.Abs(hi)*0.01)
	// The collar must cut dispersion versus unhedged.
	assert.Less(t, stat.PopStdDev(col, nil), stat.PopStdDev(unhedged, nil))
}

func TestOverlayScenarioCountMismatch(t *testing.T) {
	d1 := analysisDate.AddDate(1, 0, 0)
	d2 := analysisDate.AddDate(2, 0, 0)
	in := testInputs(t, valuation.Schedule{
		{Date: d1, Notional: 1_000_000},
		{Date: d2, Notional: 1_000_000},
	})

	// Per-date vectors that disagree in length must error out the same
	// way unhedged valuation does, never index past the shorter one.
	mismatched := valuation.ScenarioSet{
		d1: []float64{1.10},
		d2: []float64{1.10, 1.15, 1.20},
	}

	p, err := NewProtectivePut(in)
	require.NoError(t, err)
	_, err = p.NPV(mismatched)
	assert.ErrorIs(t, err, valuation.ErrMissingScenario)

	c, err := NewCollar(in, 0.95, 1.05)
	require.NoError(t, err)
	_, err = c.NPV(mismatched)
	assert.ErrorIs(t, err, valuation.ErrMissingScenario)

	_, err = NewForward(in).NPV(mismatched)
	assert.ErrorIs(t, err, valuation.ErrMissingScenario)
}

func TestOverlayMissingScenario(t *testing.T) {
	date := analysisDate.AddDate(1, 0, 0)
	in := testInputs(t, valuation.Schedule{{Date: date, Notional: 1_000_000}})

	empty := valuation.ScenarioSet{}

	p, err := NewProtectivePut(in)
	require.NoError(t, err)
	_, err = p.NPV(empty)
	assert.ErrorIs(t, err, valuation.ErrMissingScenario)

	c, err := NewCollar(in, 0.95, 1.05)
	require.NoError(t, err)
	_, err = c.NPV(empty)
	assert.ErrorIs(t, err, valuation.ErrMissingScenario)

	_, err = NewForward(in).NPV(empty)
	assert.ErrorIs(t, err, valuation.ErrMissingScenario)
}

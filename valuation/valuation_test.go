package valuation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxhedge/curve"
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

func TestNPVSingleFlow(t *testing.T) {
	date := analysisDate.AddDate(1, 0, 0)
	schedule := Schedule{{Date: date, Notional: 1_000_000}}
	scenarios := ScenarioSet{date: []float64{1.10, 1.20}}
	discount := flatCurve(t, 0.04)

	npv, err := NPV(scenarios, schedule, discount, analysisDate)
	require.NoError(t, err)
	require.Len(t, npv, 2)

	years := YearFraction(analysisDate, date)
	df := math.Exp(-0.04 * years)
	assert.InDelta(t, 1_000_000*1.10*df, npv[0], 1e-6)
	assert.InDelta(t, 1_000_000*1.20*df, npv[1], 1e-6)
}

func TestNPVSumsAcrossFlows(t *testing.T) {
	d1 := analysisDate.AddDate(1, 0, 0)
	d2 := analysisDate.AddDate(2, 0, 0)
	schedule := Schedule{
		{Date: d1, Notional: 500_000},
		{Date: d2, Notional: -200_000},
	}
	scenarios := ScenarioSet{
		d1: []float64{1.10},
		d2: []float64{1.15},
	}
	discount := flatCurve(t, 0.03)

	npv, err := NPV(scenarios, schedule, discount, analysisDate)
	require.NoError(t, err)
	require.Len(t, npv, 1)

	y1 := YearFraction(analysisDate, d1)
	y2 := YearFraction(analysisDate, d2)
	want := 500_000*1.10*math.Exp(-0.03*y1) - 200_000*1.15*math.Exp(-0.03*y2)
	assert.InDelta(t, want, npv[0], 1e-6)
}

func TestNPVOutflowsUseSimulatedRate(t *testing.T) {
	// Negative notionals convert at the simulated rate just like positive
	// ones; only hedge overlays treat the two signs differently.
	date := analysisDate.AddDate(0, 2, 0)
	schedule := Schedule{{Date: date, Notional: -10_000_000}}
	scenarios := ScenarioSet{date: []float64{1.05, 1.25}}
	discount := flatCurve(t, 0.04)

	npv, err := NPV(scenarios, schedule, discount, analysisDate)
	require.NoError(t, err)
	assert.Less(t, npv[0], 0.0)
	assert.Less(t, npv[1], npv[0], "a higher rate makes the outflow more expensive")
}

func TestNPVMissingScenario(t *testing.T) {
	d1 := analysisDate.AddDate(1, 0, 0)
	d2 := analysisDate.AddDate(2, 0, 0)
	schedule := Schedule{
		{Date: d1, Notional: 100},
		{Date: d2, Notional: 100},
	}
	scenarios := ScenarioSet{d1: []float64{1.10}}

	_, err := NPV(scenarios, schedule, flatCurve(t, 0.02), analysisDate)
	assert.ErrorIs(t, err, ErrMissingScenario)
}

func TestNPVScenarioCountMismatch(t *testing.T) {
	d1 := analysisDate.AddDate(1, 0, 0)
	d2 := analysisDate.AddDate(2, 0, 0)
	schedule := Schedule{
		{Date: d1, Notional: 100},
		{Date: d2, Notional: 100},
	}
	scenarios := ScenarioSet{
		d1: []float64{1.10, 1.20},
		d2: []float64{1.10},
	}

	_, err := NPV(scenarios, schedule, flatCurve(t, 0.02), analysisDate)
	assert.ErrorIs(t, err, ErrMissingScenario)
}

func TestScheduleDates(t *testing.T) {
	d1 := analysisDate.AddDate(1, 0, 0)
	d2 := analysisDate.AddDate(2, 0, 0)
	s := Schedule{{Date: d1, Notional: 1}, {Date: d2, Notional: -1}}
	assert.Equal(t, []time.Time{d1, d2}, s.Dates())
}

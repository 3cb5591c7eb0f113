// Package journal persists analysis runs and their per-overlay risk
// metrics so results can be compared across runs.
package journal

import (
	"time"

	"github.com/rustyeddy/fxhedge/risk"
)

// RunRecord describes one analysis run.
type RunRecord struct {
	RunID        string
	Time         time.Time
	Pair         string
	AnalysisDate time.Time
	Sims         int
	Seed         uint64
}

// MetricsRecord is one overlay's summary within a run. Overlay is
// "unhedged", "forward", "put" or "collar"; HedgeCost is zero for the
// unhedged row and the forward.
type MetricsRecord struct {
	RunID     string
	Overlay   string
	HedgeCost float64
	Metrics   risk.Metrics
}

// Journal records runs and metrics.
type Journal interface {
	RecordRun(RunRecord) error
	RecordMetrics(MetricsRecord) error
	Close() error
}

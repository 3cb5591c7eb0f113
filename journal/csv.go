package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal appends run and metrics rows to a single CSV file. Run rows
// carry empty metric columns; metric rows repeat the run ID.
type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"run_id", "row", "time", "pair", "analysis_date", "sims", "seed",
		"overlay", "hedge_cost", "mean", "median", "std", "var_95", "var_99", "cvar_95", "cvar_99",
	}); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.w.Write([]string{
		r.RunID, "run",
		r.Time.Format(time.RFC3339),
		r.Pair,
		r.AnalysisDate.Format("2006-01-02"),
		strconv.Itoa(r.Sims),
		strconv.FormatUint(r.Seed, 10),
		"", "", "", "", "", "", "", "", "",
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) RecordMetrics(m MetricsRecord) error {
	err := j.w.Write([]string{
		m.RunID, "metrics", "", "", "", "", "",
		m.Overlay,
		f(m.HedgeCost),
		f(m.Metrics.Mean),
		f(m.Metrics.Median),
		f(m.Metrics.Std),
		f(m.Metrics.VaR95),
		f(m.Metrics.VaR99),
		f(m.Metrics.CVaR95),
		f(m.Metrics.CVaR99),
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

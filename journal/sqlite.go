package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, time, pair, analysis_date, sims, seed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Time, r.Pair, r.AnalysisDate, r.Sims, int64(r.Seed),
	)
	return err
}

func (j *SQLiteJournal) RecordMetrics(m MetricsRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO metrics
		(run_id, overlay, hedge_cost, mean, median, std, var_95, var_99, cvar_95, cvar_99)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, m.Overlay, m.HedgeCost,
		m.Metrics.Mean, m.Metrics.Median, m.Metrics.Std,
		m.Metrics.VaR95, m.Metrics.VaR99, m.Metrics.CVaR95, m.Metrics.CVaR99,
	)
	return err
}

// ListMetrics returns the metrics rows of a run in insertion order.
func (j *SQLiteJournal) ListMetrics(runID string) ([]MetricsRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, overlay, hedge_cost, mean, median, std, var_95, var_99, cvar_95, cvar_99
		FROM metrics WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MetricsRecord
	for rows.Next() {
		var m MetricsRecord
		if err := rows.Scan(&m.RunID, &m.Overlay, &m.HedgeCost,
			&m.Metrics.Mean, &m.Metrics.Median, &m.Metrics.Std,
			&m.Metrics.VaR95, &m.Metrics.VaR99, &m.Metrics.CVaR95, &m.Metrics.CVaR99); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

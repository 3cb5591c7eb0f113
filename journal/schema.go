package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	pair TEXT NOT NULL,
	analysis_date DATETIME NOT NULL,
	sims INTEGER NOT NULL,
	seed INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS metrics (
	run_id TEXT NOT NULL,
	overlay TEXT NOT NULL,
	hedge_cost REAL NOT NULL,
	mean REAL NOT NULL,
	median REAL NOT NULL,
	std REAL NOT NULL,
	var_95 REAL NOT NULL,
	var_99 REAL NOT NULL,
	cvar_95 REAL NOT NULL,
	cvar_99 REAL NOT NULL,
	PRIMARY KEY (run_id, overlay)
);

CREATE INDEX IF NOT EXISTS idx_metrics_run ON metrics(run_id);
`

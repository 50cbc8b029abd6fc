package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	rule TEXT NOT NULL,
	dataset TEXT NOT NULL,
	bars INTEGER NOT NULL,
	initial_capital REAL NOT NULL,
	final_equity REAL NOT NULL,
	total_return REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	num_trades INTEGER NOT NULL,
	win_rate REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	entry_index INTEGER NOT NULL,
	entry_price REAL NOT NULL,
	exit_index INTEGER NOT NULL,
	exit_price REAL NOT NULL,
	return_pct REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	bar_index INTEGER NOT NULL,
	equity REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
CREATE INDEX IF NOT EXISTS idx_equity_run ON equity(run_id, bar_index);
`

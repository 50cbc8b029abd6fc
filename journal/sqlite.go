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
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r BacktestRun) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, rule, dataset, bars, initial_capital, final_equity, total_return, max_drawdown, num_trades, win_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Rule, r.Dataset, r.Bars, r.InitialCapital,
		r.FinalEquity, r.TotalReturn, r.MaxDrawdown, r.NumTrades, r.WinRate,
	)
	return err
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, entry_index, entry_price, exit_index, exit_price, return_pct)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.RunID, t.EntryIndex, t.EntryPrice, t.ExitIndex, t.ExitPrice, t.ReturnPct,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquityPoint) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, bar_index, equity)
		VALUES (?, ?, ?)`,
		e.RunID, e.BarIndex, e.Equity,
	)
	return err
}

// GetRun loads one run summary by ID.
func (j *SQLiteJournal) GetRun(runID string) (BacktestRun, error) {
	var r BacktestRun
	err := j.db.QueryRow(`
		SELECT run_id, created, rule, dataset, bars, initial_capital, final_equity, total_return, max_drawdown, num_trades, win_rate
		FROM runs WHERE run_id = ?`, runID,
	).Scan(&r.RunID, &r.Created, &r.Rule, &r.Dataset, &r.Bars, &r.InitialCapital,
		&r.FinalEquity, &r.TotalReturn, &r.MaxDrawdown, &r.NumTrades, &r.WinRate)
	return r, err
}

// ListTradesByRun returns a run's trades in entry order.
func (j *SQLiteJournal) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, entry_index, entry_price, exit_index, exit_price, return_pct
		FROM trades WHERE run_id = ? ORDER BY entry_index`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(&t.RunID, &t.EntryIndex, &t.EntryPrice, &t.ExitIndex, &t.ExitPrice, &t.ReturnPct); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListEquityByRun returns a run's equity curve in bar order.
func (j *SQLiteJournal) ListEquityByRun(runID string) ([]EquityPoint, error) {
	rows, err := j.db.Query(`
		SELECT run_id, bar_index, equity
		FROM equity WHERE run_id = ? ORDER BY bar_index`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquityPoint
	for rows.Next() {
		var e EquityPoint
		if err := rows.Scan(&e.RunID, &e.BarIndex, &e.Equity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

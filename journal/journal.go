// Package journal persists backtest runs, trades, and equity curves to CSV
// files or a SQLite database.
package journal

import "time"

// BacktestRun is the summary row for one run, keyed by a ULID.
type BacktestRun struct {
	RunID          string
	Created        time.Time
	Rule           string
	Dataset        string
	Bars           int
	InitialCapital float64
	FinalEquity    float64
	TotalReturn    float64
	MaxDrawdown    float64
	NumTrades      int
	WinRate        float64
}

// TradeRecord is one completed trade belonging to a run.
type TradeRecord struct {
	RunID      string
	EntryIndex int
	EntryPrice float64
	ExitIndex  int
	ExitPrice  float64
	ReturnPct  float64
}

// EquityPoint is one bar of the mark-to-market equity curve.
type EquityPoint struct {
	RunID    string
	BarIndex int
	Equity   float64
}

type Journal interface {
	RecordRun(BacktestRun) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquityPoint) error
	Close() error
}

// Package backtest wires the pipeline together: rule text -> AST -> signal
// series -> simulation, with optional journaling of the run.
package backtest

import (
	"fmt"
	"time"

	"github.com/Carnage203/nl-to-dsl-strategy-compiler/dsl"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/internal/id"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/journal"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/market"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/signals"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/sim"
)

// Runner drives one full backtest from rule text to results.
type Runner struct {
	Rule           string
	Candles        market.Series
	InitialCapital float64

	// Journal is optional; when set, the run summary, trade log, and
	// equity curve are recorded under a fresh ULID.
	Journal journal.Journal

	// Dataset labels the candle source in journal rows.
	Dataset string
}

// Result couples a run's outputs with the identifiers needed to find it
// again in a journal.
type Result struct {
	RunID    string
	Strategy *dsl.Strategy
	Signals  *signals.Signals
	Sim      *sim.Results
}

// Run executes parse -> compile -> simulate and journals the outcome.
// Errors from each stage propagate typed and unwrapped so callers can
// distinguish syntax, semantic, evaluation, and data failures.
func (r *Runner) Run() (*Result, error) {
	if len(r.Candles) == 0 {
		return nil, fmt.Errorf("backtest: candles are required")
	}

	strategy, err := dsl.Parse(r.Rule)
	if err != nil {
		return nil, err
	}

	sigs, err := signals.Compile(strategy, r.Candles)
	if err != nil {
		return nil, err
	}

	results, err := sim.Run(r.Candles, sigs.Entry, sigs.Exit, r.InitialCapital)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:    id.New(),
		Strategy: strategy,
		Signals:  sigs,
		Sim:      results,
	}

	if r.Journal != nil {
		if err := r.record(res); err != nil {
			return nil, fmt.Errorf("journal: %w", err)
		}
	}

	return res, nil
}

func (r *Runner) record(res *Result) error {
	err := r.Journal.RecordRun(journal.BacktestRun{
		RunID:          res.RunID,
		Created:        time.Now().UTC(),
		Rule:           r.Rule,
		Dataset:        r.Dataset,
		Bars:           len(r.Candles),
		InitialCapital: res.Sim.InitialCapital,
		FinalEquity:    res.Sim.FinalEquity,
		TotalReturn:    res.Sim.TotalReturn,
		MaxDrawdown:    res.Sim.MaxDrawdown,
		NumTrades:      res.Sim.NumTrades,
		WinRate:        res.Sim.WinRate,
	})
	if err != nil {
		return err
	}

	for _, t := range res.Sim.Trades {
		err := r.Journal.RecordTrade(journal.TradeRecord{
			RunID:      res.RunID,
			EntryIndex: t.EntryIndex,
			EntryPrice: t.EntryPrice,
			ExitIndex:  t.ExitIndex,
			ExitPrice:  t.ExitPrice,
			ReturnPct:  t.ReturnPct,
		})
		if err != nil {
			return err
		}
	}

	for i, e := range res.Sim.EquityCurve {
		err := r.Journal.RecordEquity(journal.EquityPoint{
			RunID:    res.RunID,
			BarIndex: i,
			Equity:   e,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

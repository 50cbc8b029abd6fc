package backtest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carnage203/nl-to-dsl-strategy-compiler/dsl"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/journal"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/market"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/signals"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/sim"
)

// memJournal captures records in memory for assertions.
type memJournal struct {
	runs   []journal.BacktestRun
	trades []journal.TradeRecord
	equity []journal.EquityPoint
	closed bool
}

func (m *memJournal) RecordRun(r journal.BacktestRun) error {
	m.runs = append(m.runs, r)
	return nil
}

func (m *memJournal) RecordTrade(t journal.TradeRecord) error {
	m.trades = append(m.trades, t)
	return nil
}

func (m *memJournal) RecordEquity(e journal.EquityPoint) error {
	m.equity = append(m.equity, e)
	return nil
}

func (m *memJournal) Close() error {
	m.closed = true
	return nil
}

func stepCandles(closes ...float64) market.Series {
	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make(market.Series, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		out[i] = market.Candle{Open: open, High: max(open, c), Low: min(open, c), Close: c, Volume: 1000, Time: day.AddDate(0, 0, i)}
	}
	return out
}

func TestRunnerEndToEnd(t *testing.T) {
	candles := stepCandles(90, 95, 100, 105, 110, 114, 117, 119, 121, 130)
	j := &memJournal{}

	runner := &Runner{
		Rule:           "ENTRY: close > 100\nEXIT: close > 120",
		Candles:        candles,
		InitialCapital: 100_000,
		Journal:        j,
		Dataset:        "step",
	}

	res, err := runner.Run()
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)

	// Entry signal fires at bar 3 (close 105), fills at bar 4's open;
	// exit fires at bar 8 (close 121), fills at bar 9's open.
	require.Equal(t, 1, res.Sim.NumTrades)
	trade := res.Sim.Trades[0]
	assert.Equal(t, 4, trade.EntryIndex)
	assert.Equal(t, 105.0, trade.EntryPrice)
	assert.Equal(t, 9, trade.ExitIndex)
	assert.Equal(t, 121.0, trade.ExitPrice)
	assert.InDelta(t, (121.0-105.0)/105.0*100, res.Sim.TotalReturn, 1e-9)
	assert.Equal(t, 1.0, res.Sim.WinRate)

	// Journal rows mirror the run.
	require.Len(t, j.runs, 1)
	assert.Equal(t, res.RunID, j.runs[0].RunID)
	assert.Equal(t, "step", j.runs[0].Dataset)
	assert.Equal(t, len(candles), j.runs[0].Bars)
	assert.Equal(t, res.Sim.FinalEquity, j.runs[0].FinalEquity)

	require.Len(t, j.trades, 1)
	assert.Equal(t, res.RunID, j.trades[0].RunID)
	assert.Equal(t, 4, j.trades[0].EntryIndex)

	require.Len(t, j.equity, len(candles))
	assert.Equal(t, 0, j.equity[0].BarIndex)
	assert.Equal(t, res.Sim.EquityCurve[5], j.equity[5].Equity)
}

func TestRunnerWithoutJournal(t *testing.T) {
	runner := &Runner{
		Rule:           "ENTRY: close > SMA(close,5)",
		Candles:        market.Synthetic(50, 42),
		InitialCapital: 10_000,
	}
	res, err := runner.Run()
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.Len(t, res.Sim.EquityCurve, 50)
}

func TestRunnerDistinctRunIDs(t *testing.T) {
	runner := &Runner{
		Rule:           "ENTRY: close > 0",
		Candles:        stepCandles(1, 2, 3),
		InitialCapital: 1000,
	}
	a, err := runner.Run()
	require.NoError(t, err)
	b, err := runner.Run()
	require.NoError(t, err)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunnerPropagatesTypedErrors(t *testing.T) {
	candles := stepCandles(1, 2, 3)

	t.Run("syntax", func(t *testing.T) {
		_, err := (&Runner{Rule: "ENTRY: close >", Candles: candles, InitialCapital: 1000}).Run()
		var se *dsl.SyntaxError
		assert.ErrorAs(t, err, &se)
	})

	t.Run("semantic", func(t *testing.T) {
		_, err := (&Runner{Rule: "ENTRY: closing > 1", Candles: candles, InitialCapital: 1000}).Run()
		var se *dsl.SemanticError
		assert.ErrorAs(t, err, &se)
	})

	t.Run("evaluation", func(t *testing.T) {
		_, err := (&Runner{Rule: "ENTRY: SMA(close,10) > 1", Candles: candles, InitialCapital: 1000}).Run()
		var ee *signals.EvaluationError
		assert.ErrorAs(t, err, &ee)
	})

	t.Run("insufficient data", func(t *testing.T) {
		_, err := (&Runner{Rule: "ENTRY: close > 1", Candles: stepCandles(1), InitialCapital: 1000}).Run()
		var ide *sim.InsufficientDataError
		assert.ErrorAs(t, err, &ide)
	})
}

func TestPrintResultsReport(t *testing.T) {
	runner := &Runner{
		Rule:           "ENTRY: close > 100\nEXIT: close > 120",
		Candles:        stepCandles(90, 95, 100, 105, 110, 114, 117, 119, 121, 130),
		InitialCapital: 100_000,
	}
	res, err := runner.Run()
	require.NoError(t, err)

	var b strings.Builder
	PrintResults(&b, res)
	out := b.String()

	assert.Contains(t, out, res.RunID)
	assert.Contains(t, out, "ENTRY: close > 100")
	assert.Contains(t, out, "Trades:        1")
	assert.Contains(t, out, "Win Rate:      100.0%")
	assert.Contains(t, out, "Total Return:")
	assert.Contains(t, out, "entry bar 4 @ 105.00")
}

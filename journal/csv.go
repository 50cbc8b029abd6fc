package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	runs   *csv.Writer
	trades *csv.Writer
	equity *csv.Writer
	rf     *os.File
	tf     *os.File
	ef     *os.File
}

func NewCSV(runsPath, tradesPath, equityPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		return nil, err
	}

	rw := csv.NewWriter(rf)
	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := rw.Write([]string{"run_id", "created", "rule", "dataset", "bars", "initial_capital", "final_equity", "total_return", "max_drawdown", "num_trades", "win_rate"}); err != nil {
		return nil, err
	}
	if err := tw.Write([]string{"run_id", "entry_index", "entry_price", "exit_index", "exit_price", "return_pct"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "bar_index", "equity"}); err != nil {
		return nil, err
	}

	for _, w := range []*csv.Writer{rw, tw, ew} {
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	return &CSVJournal{runs: rw, trades: tw, equity: ew, rf: rf, tf: tf, ef: ef}, nil
}

func (j *CSVJournal) RecordRun(r BacktestRun) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.Format(time.RFC3339),
		r.Rule,
		r.Dataset,
		strconv.Itoa(r.Bars),
		f(r.InitialCapital),
		f(r.FinalEquity),
		f(r.TotalReturn),
		f(r.MaxDrawdown),
		strconv.Itoa(r.NumTrades),
		f(r.WinRate),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.RunID,
		strconv.Itoa(t.EntryIndex),
		f(t.EntryPrice),
		strconv.Itoa(t.ExitIndex),
		f(t.ExitPrice),
		f(t.ReturnPct),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquityPoint) error {
	err := j.equity.Write([]string{
		e.RunID,
		strconv.Itoa(e.BarIndex),
		f(e.Equity),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	for _, w := range []*csv.Writer{j.runs, j.trades, j.equity} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}

	for _, file := range []*os.File{j.rf, j.tf, j.ef} {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

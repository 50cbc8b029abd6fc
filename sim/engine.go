// Package sim replays entry/exit signals against historical candles with a
// long-only, single-position, next-bar-execution state machine.
package sim

import (
	"fmt"

	"github.com/Carnage203/nl-to-dsl-strategy-compiler/market"
)

// InsufficientDataError reports a run with too few bars. Next-bar execution
// needs at least two.
type InsufficientDataError struct {
	Bars int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need at least 2 bars, got %d", e.Bars)
}

// Trade is one completed FLAT -> LONG -> FLAT cycle. Immutable once
// appended to the trade log.
type Trade struct {
	EntryIndex int
	EntryPrice float64
	ExitIndex  int
	ExitPrice  float64
	ReturnPct  float64
}

type position int

const (
	flat position = iota
	long
)

// Run replays the signal series against the candles.
//
// One transition per bar index i from 0 to N-2: a signal observed at bar i
// fills at bar i+1's open. The last bar can only close a position, never
// open one; anything still open after the final bar is force-closed at that
// bar's closing price. Capital compounds fully into each trade.
//
// Deterministic: the same inputs always produce the same Results. Each call
// owns its own state, so concurrent runs over different inputs are safe.
func Run(candles market.Series, entry, exit []bool, initialCapital float64) (*Results, error) {
	n := len(candles)
	if n < 2 {
		return nil, &InsufficientDataError{Bars: n}
	}
	if len(entry) != n || len(exit) != n {
		return nil, fmt.Errorf("sim: signal length mismatch: %d bars, %d entry, %d exit",
			n, len(entry), len(exit))
	}
	if initialCapital <= 0 {
		return nil, fmt.Errorf("sim: initial capital must be positive, got %v", initialCapital)
	}

	var (
		pos        = flat
		capital    = initialCapital
		entryPrice float64
		entryIdx   int
		trades     []Trade
		equity     = make([]float64, n)
	)

	closeTrade := func(exitIdx int, exitPrice float64) {
		returnPct := (exitPrice - entryPrice) / entryPrice * 100
		capital = capital * exitPrice / entryPrice
		trades = append(trades, Trade{
			EntryIndex: entryIdx,
			EntryPrice: entryPrice,
			ExitIndex:  exitIdx,
			ExitPrice:  exitPrice,
			ReturnPct:  returnPct,
		})
		pos = flat
	}

	for i := 0; i < n; i++ {
		// At most one transition per signal bar: a fill decided at bar
		// i-1 executes at this bar's open. An exit never turns straight
		// into a re-entry on the same bar.
		if i > 0 {
			switch {
			case pos == long && exit[i-1]:
				closeTrade(i, candles[i].Open)
			case pos == flat && entry[i-1]:
				pos = long
				entryIdx = i
				entryPrice = candles[i].Open
			}
		}

		// Mark to market on the close.
		if pos == long {
			equity[i] = capital * candles[i].Close / entryPrice
		} else {
			equity[i] = capital
		}
	}

	// Forced close: no next bar exists, so fill at the final close.
	if pos == long {
		closeTrade(n-1, candles[n-1].Close)
		equity[n-1] = capital
	}

	return newResults(initialCapital, capital, trades, equity), nil
}

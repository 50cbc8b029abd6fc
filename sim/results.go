package sim

// Results summarizes one backtest run.
//
// TotalReturn and MaxDrawdown are percentages; MaxDrawdown is never
// positive. WinRate is in [0,1] and defined as 0 when there are no trades.
// EquityCurve holds one mark-to-market value per input bar.
type Results struct {
	TotalReturn    float64
	MaxDrawdown    float64
	NumTrades      int
	WinRate        float64
	Trades         []Trade
	EquityCurve    []float64
	InitialCapital float64
	FinalEquity    float64
}

func newResults(initial, final float64, trades []Trade, equity []float64) *Results {
	r := &Results{
		Trades:         trades,
		EquityCurve:    equity,
		NumTrades:      len(trades),
		InitialCapital: initial,
		FinalEquity:    final,
	}

	r.TotalReturn = (final - initial) / initial * 100

	if len(trades) > 0 {
		wins := 0
		for _, t := range trades {
			if t.ReturnPct > 0 {
				wins++
			}
		}
		r.WinRate = float64(wins) / float64(len(trades))
	}

	r.MaxDrawdown = maxDrawdown(equity)
	return r
}

// maxDrawdown is the deepest percentage decline from the running equity
// peak: min over i of (equity[i] - peak[i]) / peak[i] * 100. Zero when
// equity never declines.
func maxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}

	peak := equity[0]
	worst := 0.0
	for _, e := range equity {
		if e > peak {
			peak = e
		}
		dd := (e - peak) / peak * 100
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

package backtest

import (
	"fmt"
	"io"
	"strings"

	"github.com/Carnage203/nl-to-dsl-strategy-compiler/dsl"
)

// PrintResults writes a plain-text run report.
func PrintResults(w io.Writer, res *Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", res.RunID)
	fmt.Fprintf(w, "Rule:\n")
	fmt.Fprintf(w, "  %s\n", indentRule(dsl.Format(res.Strategy)))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", res.Sim.NumTrades)
	fmt.Fprintf(w, "Win Rate:      %.1f%%\n", res.Sim.WinRate*100)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Capital: %.2f\n", res.Sim.InitialCapital)
	fmt.Fprintf(w, "Final Equity:  %.2f\n", res.Sim.FinalEquity)
	fmt.Fprintf(w, "Total Return:  %.2f%%\n", res.Sim.TotalReturn)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", res.Sim.MaxDrawdown)

	if len(res.Sim.Trades) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Trade Log")
		fmt.Fprintln(w, "--------------------------------------------------")
		for i, t := range res.Sim.Trades {
			fmt.Fprintf(w, "%3d. entry bar %d @ %.2f -> exit bar %d @ %.2f (%+.2f%%)\n",
				i+1, t.EntryIndex, t.EntryPrice, t.ExitIndex, t.ExitPrice, t.ReturnPct)
		}
	}

	fmt.Fprintln(w)
}

func indentRule(rule string) string {
	return strings.ReplaceAll(rule, "\n", "\n  ")
}

package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stratc",
	Short: "Compile trading-rule text into signals and backtest them",
	Long: `Stratc compiles a small declarative trading-rule language into per-bar
entry/exit signals and replays them against historical OHLCV bars.

It provides tools for:
  - Translating plain-English rules into the rule language
  - Parsing rules and inspecting the resulting syntax tree
  - Backtesting rules over CSV or synthetic price data
  - Journaling runs, trades, and equity curves to CSV or SQLite`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Carnage203/nl-to-dsl-strategy-compiler/backtest"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/config"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/journal"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/market"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/translate"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Compile a rule and replay it against historical bars",
	Long: `Backtest parses a rule program, compiles it into entry/exit signals over
the selected OHLCV data, and replays the signals through the simulator.

Example:
  stratc backtest --rule "ENTRY: close > SMA(close,20)" --csv data/spy.csv
  stratc backtest --natural "buy when price crosses above sma-20" --synthetic 250
  stratc backtest --config run.yaml`,
	RunE: runBacktest,
}

var (
	btConfigPath string
	btRule       string
	btRuleFile   string
	btNatural    string
	btCSVPath    string
	btSynthetic  int
	btSeed       int64
	btCapital    float64
	btDBPath     string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "YAML/JSON config file (other flags are ignored)")
	backtestCmd.Flags().StringVarP(&btRule, "rule", "r", "", "rule text (ENTRY:/EXIT: blocks)")
	backtestCmd.Flags().StringVar(&btRuleFile, "rule-file", "", "path to a rule text file")
	backtestCmd.Flags().StringVarP(&btNatural, "natural", "n", "", "plain-English rule, translated before parsing")
	backtestCmd.Flags().StringVar(&btCSVPath, "csv", "", "path to OHLCV CSV (date,open,high,low,close,volume)")
	backtestCmd.Flags().IntVar(&btSynthetic, "synthetic", 0, "generate N synthetic bars instead of loading a CSV")
	backtestCmd.Flags().Int64Var(&btSeed, "seed", 42, "seed for synthetic bars")
	backtestCmd.Flags().Float64VarP(&btCapital, "capital", "b", 100_000, "initial capital")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "", "journal the run to this SQLite database")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := backtestConfig()
	if err != nil {
		return err
	}

	rule, err := cfg.RuleText()
	if err != nil {
		return err
	}

	var candles market.Series
	dataset := cfg.Data.CSV
	if cfg.Data.CSV != "" {
		candles, err = market.LoadCSV(cfg.Data.CSV)
		if err != nil {
			return fmt.Errorf("load candles: %w", err)
		}
	} else {
		candles = market.Synthetic(cfg.Data.SyntheticBars, cfg.Data.Seed)
		dataset = fmt.Sprintf("synthetic(%d,seed=%d)", cfg.Data.SyntheticBars, cfg.Data.Seed)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	runner := &backtest.Runner{
		Rule:           rule,
		Candles:        candles,
		InitialCapital: cfg.Backtest.InitialCapital,
		Journal:        j,
		Dataset:        dataset,
	}

	res, err := runner.Run()
	if err != nil {
		return err
	}

	backtest.PrintResults(os.Stdout, res)
	return nil
}

// backtestConfig builds the effective configuration from --config or from
// the individual flags.
func backtestConfig() (*config.Config, error) {
	if btConfigPath != "" {
		return config.LoadFromFile(btConfigPath)
	}

	cfg := config.Default()
	cfg.Rule = config.RuleConfig{}

	switch {
	case btNatural != "":
		cfg.Rule.Text = translate.Translate(btNatural)
		fmt.Printf("Translated rule:\n  %s\n\n", strings.ReplaceAll(cfg.Rule.Text, "\n", "\n  "))
	case btRuleFile != "":
		cfg.Rule.File = btRuleFile
	case btRule != "":
		cfg.Rule.Text = btRule
	default:
		return nil, fmt.Errorf("one of --rule, --rule-file, --natural, or --config is required")
	}

	if btCSVPath != "" {
		cfg.Data = config.DataConfig{CSV: btCSVPath}
	} else {
		bars := btSynthetic
		if bars <= 0 {
			bars = 250
		}
		cfg.Data = config.DataConfig{SyntheticBars: bars, Seed: btSeed}
	}

	cfg.Backtest.InitialCapital = btCapital

	if btDBPath != "" {
		cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: btDBPath}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return nil, nil
	case "csv":
		return journal.NewCSV(jc.RunsFile, jc.TradesFile, jc.EquityFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	}
	return nil, fmt.Errorf("unknown journal type %q", jc.Type)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Carnage203/nl-to-dsl-strategy-compiler/dsl"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate <english rule>",
	Short: "Translate a plain-English rule into rule text",
	Long: `Translate rewrites an English trading rule into the rule language using
pattern matching, then checks that the result parses.

Example:
  stratc translate "buy when close crosses above sma-20 and volume > 1 million"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

var translateCheck bool

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().BoolVar(&translateCheck, "check", true, "verify the translation parses")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	rule := translate.Translate(strings.Join(args, " "))
	fmt.Println(rule)

	if translateCheck {
		if _, err := dsl.Parse(rule); err != nil {
			return fmt.Errorf("translation does not parse: %w", err)
		}
	}
	return nil
}

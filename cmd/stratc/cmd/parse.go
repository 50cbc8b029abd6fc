package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Carnage203/nl-to-dsl-strategy-compiler/dsl"
)

var parseCmd = &cobra.Command{
	Use:   "parse [rule text]",
	Short: "Parse a rule program and dump its syntax tree",
	Long: `Parse checks a rule program against the grammar and prints the resulting
syntax tree, one node per line.

Example:
  stratc parse "ENTRY: close > SMA(close,20) AND volume > 1M"
  stratc parse --file strategy.rule`,
	RunE: runParse,
}

var parseFile string

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseFile, "file", "f", "", "read the rule program from a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	var text string
	switch {
	case parseFile != "":
		data, err := os.ReadFile(parseFile)
		if err != nil {
			return err
		}
		text = string(data)
	case len(args) > 0:
		text = strings.Join(args, " ")
	default:
		return fmt.Errorf("rule text or --file is required")
	}

	st, err := dsl.Parse(text)
	if err != nil {
		return err
	}

	fmt.Println("Canonical form:")
	fmt.Printf("  %s\n\n", strings.ReplaceAll(dsl.Format(st), "\n", "\n  "))

	fmt.Println("Syntax tree:")
	if st.Entry != nil {
		fmt.Println("ENTRY")
		dumpExpr(st.Entry, 1)
	}
	if st.Exit != nil {
		fmt.Println("EXIT")
		dumpExpr(st.Exit, 1)
	}
	return nil
}

func dumpExpr(e dsl.Expr, depth int) {
	pad := strings.Repeat("  ", depth)

	switch n := e.(type) {
	case *dsl.LogicalExpr:
		fmt.Printf("%s%s\n", pad, n.Op)
		dumpExpr(n.Left, depth+1)
		dumpExpr(n.Right, depth+1)
	case *dsl.Comparison:
		fmt.Printf("%scompare %s\n", pad, n.Op)
		dumpExpr(n.Left, depth+1)
		dumpExpr(n.Right, depth+1)
	case *dsl.CrossExpr:
		fmt.Printf("%scrosses %s\n", pad, n.Dir)
		dumpExpr(n.Left, depth+1)
		dumpExpr(n.Right, depth+1)
	case *dsl.ArithExpr:
		fmt.Printf("%sarith %s\n", pad, n.Op)
		dumpExpr(n.Left, depth+1)
		dumpExpr(n.Right, depth+1)
	case *dsl.IndicatorCall:
		fmt.Printf("%s%s(%s,%d)\n", pad, n.Kind, n.Field.Name, n.Window)
	case *dsl.FieldRef:
		fmt.Printf("%sfield %s\n", pad, n.Name)
	case *dsl.Literal:
		fmt.Printf("%snumber %s\n", pad, n)
	}
}

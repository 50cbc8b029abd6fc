// Package signals compiles a rule AST into per-bar boolean entry/exit
// series over an OHLCV candle series.
package signals

import (
	"fmt"

	"github.com/Carnage203/nl-to-dsl-strategy-compiler/dsl"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/indicators"
	"github.com/Carnage203/nl-to-dsl-strategy-compiler/market"
)

// Signals holds one boolean value per bar for each rule block, aligned 1:1
// with the input candle series. A block that was not declared compiles to an
// all-false series.
type Signals struct {
	Entry []bool
	Exit  []bool
}

// EvaluationError reports an AST that is valid but incompatible with the
// supplied data: a window longer than the available history, or a missing
// field column.
type EvaluationError struct {
	Reason string
}

func (e *EvaluationError) Error() string {
	return "evaluation error: " + e.Reason
}

// Compile walks each rule block bottom-up and produces its signal series.
//
// Bars where an indicator is still undefined compare as false, never true,
// so warmup bars can never fire a signal. Cross events look only at the
// current and previous bar; nothing here inspects a future bar.
func Compile(st *dsl.Strategy, candles market.Series) (*Signals, error) {
	c := &compiler{candles: candles}

	out := &Signals{
		Entry: make([]bool, len(candles)),
		Exit:  make([]bool, len(candles)),
	}

	if st.Entry != nil {
		series, err := c.evalBool(st.Entry)
		if err != nil {
			return nil, err
		}
		out.Entry = series
	}
	if st.Exit != nil {
		series, err := c.evalBool(st.Exit)
		if err != nil {
			return nil, err
		}
		out.Exit = series
	}

	return out, nil
}

type compiler struct {
	candles market.Series
}

func (c *compiler) evalBool(e dsl.Expr) ([]bool, error) {
	switch n := e.(type) {
	case *dsl.LogicalExpr:
		left, err := c.evalBool(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.evalBool(n.Right)
		if err != nil {
			return nil, err
		}
		out := make([]bool, len(left))
		for i := range out {
			if n.Op == dsl.OpAnd {
				out[i] = left[i] && right[i]
			} else {
				out[i] = left[i] || right[i]
			}
		}
		return out, nil

	case *dsl.Comparison:
		left, err := c.evalSeries(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.evalSeries(n.Right)
		if err != nil {
			return nil, err
		}
		out := make([]bool, len(left))
		for i := range out {
			// NaN operands fail every comparison, so undefined
			// warmup bars stay false.
			out[i] = compare(n.Op, left[i], right[i])
		}
		return out, nil

	case *dsl.CrossExpr:
		left, err := c.evalSeries(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.evalSeries(n.Right)
		if err != nil {
			return nil, err
		}
		return cross(n.Dir, left, right), nil
	}

	return nil, fmt.Errorf("signals: expression %T is not a condition", e)
}

func (c *compiler) evalSeries(e dsl.Expr) ([]float64, error) {
	switch n := e.(type) {
	case *dsl.Literal:
		out := make([]float64, len(c.candles))
		v := n.Scaled()
		for i := range out {
			out[i] = v
		}
		return out, nil

	case *dsl.FieldRef:
		col, err := c.candles.Column(n.Name)
		if err != nil {
			return nil, &EvaluationError{Reason: err.Error()}
		}
		return col, nil

	case *dsl.IndicatorCall:
		if n.Window > len(c.candles) {
			return nil, &EvaluationError{Reason: fmt.Sprintf(
				"%s(%s,%d) needs %d bars, only %d available",
				n.Kind, n.Field.Name, n.Window, n.Window, len(c.candles))}
		}
		col, err := c.candles.Column(n.Field.Name)
		if err != nil {
			return nil, &EvaluationError{Reason: err.Error()}
		}
		switch n.Kind {
		case dsl.IndSMA:
			return indicators.SMA(col, n.Window)
		case dsl.IndRSI:
			return indicators.RSI(col, n.Window)
		}
		return nil, fmt.Errorf("signals: unknown indicator %v", n.Kind)

	case *dsl.ArithExpr:
		left, err := c.evalSeries(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.evalSeries(n.Right)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(left))
		for i := range out {
			out[i] = arith(n.Op, left[i], right[i])
		}
		return out, nil
	}

	return nil, fmt.Errorf("signals: expression %T is not series-valued", e)
}

func compare(op dsl.CmpOp, a, b float64) bool {
	switch op {
	case dsl.CmpGT:
		return a > b
	case dsl.CmpLT:
		return a < b
	case dsl.CmpGE:
		return a >= b
	case dsl.CmpLE:
		return a <= b
	default:
		return a == b
	}
}

func arith(op dsl.ArithOp, a, b float64) float64 {
	switch op {
	case dsl.ArithAdd:
		return a + b
	case dsl.ArithSub:
		return a - b
	case dsl.ArithMul:
		return a * b
	default:
		return a / b
	}
}

// cross detects comparison-state transitions between consecutive bars.
// True at bar i iff the operands were strictly on the other side at bar i-1
// and have reached or passed each other at bar i. Bar 0 has no previous bar
// and is always false.
func cross(dir dsl.CrossDir, left, right []float64) []bool {
	out := make([]bool, len(left))
	for i := 1; i < len(left); i++ {
		if dir == dsl.CrossAbove {
			out[i] = left[i-1] < right[i-1] && left[i] >= right[i]
		} else {
			out[i] = left[i-1] > right[i-1] && left[i] <= right[i]
		}
	}
	return out
}

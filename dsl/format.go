package dsl

import (
	"strconv"
	"strings"
)

// Format serializes a Strategy back to rule text. The output re-parses to an
// identical AST, so Parse(Format(Parse(text))) is stable.
func Format(st *Strategy) string {
	var b strings.Builder
	if st.Entry != nil {
		b.WriteString("ENTRY: ")
		writeExpr(&b, st.Entry, 0)
	}
	if st.Exit != nil {
		if st.Entry != nil {
			b.WriteByte('\n')
		}
		b.WriteString("EXIT: ")
		writeExpr(&b, st.Exit, 0)
	}
	return b.String()
}

// FormatExpr serializes a single expression.
func FormatExpr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e, 0)
	return b.String()
}

// Binding strength, loosest to tightest. Children that bind looser than
// their parent get parenthesized.
const (
	precOr = iota + 1
	precAnd
	precCmp
	precAdd
	precMul
	precAtom
)

func precedence(e Expr) int {
	switch n := e.(type) {
	case *LogicalExpr:
		if n.Op == OpOr {
			return precOr
		}
		return precAnd
	case *Comparison, *CrossExpr:
		return precCmp
	case *ArithExpr:
		if n.Op == ArithAdd || n.Op == ArithSub {
			return precAdd
		}
		return precMul
	}
	return precAtom
}

func writeExpr(b *strings.Builder, e Expr, parent int) {
	prec := precedence(e)
	paren := prec < parent
	if paren {
		b.WriteByte('(')
	}

	switch n := e.(type) {
	case *LogicalExpr:
		writeExpr(b, n.Left, prec)
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		// Right operand at prec+1 keeps same-level nesting explicit.
		writeExpr(b, n.Right, prec+1)

	case *Comparison:
		writeExpr(b, n.Left, prec+1)
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		writeExpr(b, n.Right, prec+1)

	case *CrossExpr:
		writeExpr(b, n.Left, prec+1)
		b.WriteString(" crosses ")
		b.WriteString(n.Dir.String())
		b.WriteByte(' ')
		writeExpr(b, n.Right, prec+1)

	case *ArithExpr:
		writeExpr(b, n.Left, prec)
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		writeExpr(b, n.Right, prec+1)

	case *IndicatorCall:
		b.WriteString(n.Kind.String())
		b.WriteByte('(')
		b.WriteString(n.Field.Name)
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(n.Window))
		b.WriteByte(')')

	case *FieldRef:
		b.WriteString(n.Name)

	case *Literal:
		b.WriteString(n.String())
	}

	if paren {
		b.WriteByte(')')
	}
}

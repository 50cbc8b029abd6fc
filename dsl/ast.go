// Package dsl parses trading-rule text into a typed abstract syntax tree.
//
// A rule program holds up to two blocks:
//
//	ENTRY: close > SMA(close,20) AND volume > 1M
//	EXIT:  RSI(close,14) crosses below 70
//
// The AST is a closed set of node kinds. Downstream consumers dispatch with
// a type switch; nodes are never mutated after Parse returns.
package dsl

import (
	"fmt"
	"strconv"
)

// Node is the interface all AST nodes implement.
type Node interface {
	node()
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	expr()
}

// Strategy is the root node: one optional expression per rule block.
// A nil Entry or Exit means that block was not declared.
type Strategy struct {
	Entry Expr
	Exit  Expr
}

// LogicalOp enumerates boolean connectives.
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
)

func (op LogicalOp) String() string {
	if op == OpAnd {
		return "AND"
	}
	return "OR"
}

// LogicalExpr combines two boolean sub-expressions. AND binds tighter
// than OR.
type LogicalExpr struct {
	Op    LogicalOp
	Left  Expr
	Right Expr
}

// CmpOp enumerates comparison operators.
type CmpOp int

const (
	CmpGT CmpOp = iota
	CmpLT
	CmpGE
	CmpLE
	CmpEQ
)

func (op CmpOp) String() string {
	switch op {
	case CmpGT:
		return ">"
	case CmpLT:
		return "<"
	case CmpGE:
		return ">="
	case CmpLE:
		return "<="
	default:
		return "=="
	}
}

// Comparison compares two series-valued operands elementwise. Comparisons
// are non-associative: a > b > c is rejected by the parser.
type Comparison struct {
	Op    CmpOp
	Left  Expr
	Right Expr
}

// CrossDir enumerates cross-event directions.
type CrossDir int

const (
	CrossAbove CrossDir = iota
	CrossBelow
)

func (d CrossDir) String() string {
	if d == CrossAbove {
		return "above"
	}
	return "below"
}

// CrossExpr is a two-bar comparison-state transition: true at bar i iff the
// operands were on the other side of each other at bar i-1. Always false at
// bar 0.
type CrossExpr struct {
	Dir   CrossDir
	Left  Expr
	Right Expr
}

// ArithOp enumerates infix arithmetic operators.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
)

func (op ArithOp) String() string {
	switch op {
	case ArithAdd:
		return "+"
	case ArithSub:
		return "-"
	case ArithMul:
		return "*"
	default:
		return "/"
	}
}

// ArithExpr applies an arithmetic operator elementwise over two
// series-valued operands.
type ArithExpr struct {
	Op    ArithOp
	Left  Expr
	Right Expr
}

// IndicatorKind enumerates the supported indicator functions.
type IndicatorKind int

const (
	IndSMA IndicatorKind = iota
	IndRSI
)

func (k IndicatorKind) String() string {
	if k == IndSMA {
		return "SMA"
	}
	return "RSI"
}

// IndicatorCall invokes an indicator over one OHLCV field with a fixed
// trailing window. Window is validated positive at parse time; whether it
// fits the available history is only known at compile time.
type IndicatorCall struct {
	Kind   IndicatorKind
	Field  *FieldRef
	Window int
}

// FieldRef names one of the five OHLCV columns (lowercase).
type FieldRef struct {
	Name string
}

// Unit enumerates numeric literal suffixes.
type Unit int

const (
	UnitNone Unit = iota
	UnitThousand
	UnitMillion
)

func (u Unit) String() string {
	switch u {
	case UnitThousand:
		return "K"
	case UnitMillion:
		return "M"
	default:
		return ""
	}
}

// Factor returns the multiplier the unit applies to the raw value.
func (u Unit) Factor() float64 {
	switch u {
	case UnitThousand:
		return 1_000
	case UnitMillion:
		return 1_000_000
	default:
		return 1
	}
}

// Literal is a scalar numeric constant. Value is the raw number as written;
// Scaled applies the unit suffix (1.5K -> 1500).
type Literal struct {
	Value float64
	Unit  Unit
}

// Scaled returns the literal value with its unit suffix applied.
func (l *Literal) Scaled() float64 {
	return l.Value * l.Unit.Factor()
}

func (l *Literal) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

func (*Strategy) node() {}

func (*LogicalExpr) node()   {}
func (*Comparison) node()    {}
func (*CrossExpr) node()     {}
func (*ArithExpr) node()     {}
func (*IndicatorCall) node() {}
func (*FieldRef) node()      {}
func (*Literal) node()       {}

func (*LogicalExpr) expr()   {}
func (*Comparison) expr()    {}
func (*CrossExpr) expr()     {}
func (*ArithExpr) expr()     {}
func (*IndicatorCall) expr() {}
func (*FieldRef) expr()      {}
func (*Literal) expr()       {}

// IsBoolean reports whether the expression yields a per-bar truth value
// rather than a numeric series.
func IsBoolean(e Expr) bool {
	switch e.(type) {
	case *LogicalExpr, *Comparison, *CrossExpr:
		return true
	}
	return false
}

func describe(e Expr) string {
	switch n := e.(type) {
	case *LogicalExpr:
		return n.Op.String() + " expression"
	case *Comparison:
		return "comparison"
	case *CrossExpr:
		return "cross event"
	case *ArithExpr:
		return "arithmetic expression"
	case *IndicatorCall:
		return fmt.Sprintf("%s(%s,%d)", n.Kind, n.Field.Name, n.Window)
	case *FieldRef:
		return "field " + n.Name
	case *Literal:
		return "number " + n.String()
	}
	return "expression"
}

package dsl

import (
	"math"
	"strconv"
	"strings"
)

// Parse turns rule text into a validated Strategy AST.
//
// A program is zero, one, or two blocks, each introduced by ENTRY: or
// EXIT:. Parsing is a pure function of its input; the returned AST is never
// mutated by downstream stages.
//
// Malformed token sequences return *SyntaxError. Structurally valid programs
// that reference an unknown field or indicator, use an invalid window,
// combine operands of the wrong kind, or declare a block twice return
// *SemanticError.
func Parse(text string) (*Strategy, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	st := &Strategy{}

	for p.peek().kind != tokEOF {
		kw := p.peek()
		if kw.kind != tokIdent {
			return nil, syntaxErr(kw.pos, "ENTRY or EXIT", kw.describe())
		}

		block := strings.ToLower(kw.text)
		if block != "entry" && block != "exit" {
			return nil, syntaxErr(kw.pos, "ENTRY or EXIT", kw.describe())
		}
		p.advance()

		if colon := p.peek(); colon.kind != tokColon {
			return nil, syntaxErr(colon.pos, `":" after `+strings.ToUpper(block), colon.describe())
		}
		p.advance()

		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !IsBoolean(expr) {
			return nil, semanticErr("%s rule must be a condition, got %s", strings.ToUpper(block), describe(expr))
		}

		switch block {
		case "entry":
			if st.Entry != nil {
				return nil, semanticErr("duplicate ENTRY block")
			}
			st.Entry = expr
		case "exit":
			if st.Exit != nil {
				return nil, semanticErr("duplicate EXIT block")
			}
			st.Exit = expr
		}
	}

	return st, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) advance() token {
	t := p.toks[p.i]
	if p.i < len(p.toks)-1 {
		p.i++
	}
	return t
}

// keyword reports whether the current token is the given case-insensitive
// identifier.
func (p *parser) keyword(word string) bool {
	t := p.peek()
	return t.kind == tokIdent && strings.EqualFold(t.text, word)
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.keyword("or") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		if !IsBoolean(left) || !IsBoolean(right) {
			return nil, semanticErr("OR requires conditions on both sides")
		}
		left = &LogicalExpr{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseClause()
	if err != nil {
		return nil, err
	}
	for p.keyword("and") {
		p.advance()
		right, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		if !IsBoolean(left) || !IsBoolean(right) {
			return nil, semanticErr("AND requires conditions on both sides")
		}
		left = &LogicalExpr{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

// parseClause parses at most one comparison or cross event over arithmetic
// operands. A clause with no operator is returned as-is so parenthesized
// arithmetic still works; block and logical levels reject non-boolean
// operands.
func (p *parser) parseClause() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if op, ok := cmpOpFor(p.peek().kind); ok {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if err := checkOperand(left, "comparison"); err != nil {
			return nil, err
		}
		if err := checkOperand(right, "comparison"); err != nil {
			return nil, err
		}
		// Comparisons are non-associative: a > b > c is malformed.
		if next := p.peek(); isCmpToken(next.kind) {
			return nil, syntaxErr(next.pos, "AND, OR, or a new block (comparisons cannot be chained)", next.describe())
		}
		return &Comparison{Op: op, Left: left, Right: right}, nil
	}

	if p.keyword("crosses") {
		p.advance()
		dirTok := p.peek()
		var dir CrossDir
		switch {
		case p.keyword("above"):
			dir = CrossAbove
		case p.keyword("below"):
			dir = CrossBelow
		default:
			return nil, syntaxErr(dirTok.pos, `"above" or "below" after "crosses"`, dirTok.describe())
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if err := checkOperand(left, "cross event"); err != nil {
			return nil, err
		}
		if err := checkOperand(right, "cross event"); err != nil {
			return nil, err
		}
		return &CrossExpr{Dir: dir, Left: left, Right: right}, nil
	}

	return left, nil
}

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op ArithOp
		switch p.peek().kind {
		case tokAdd:
			op = ArithAdd
		case tokSub:
			op = ArithSub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		if err := checkOperand(left, "arithmetic"); err != nil {
			return nil, err
		}
		if err := checkOperand(right, "arithmetic"); err != nil {
			return nil, err
		}
		left = &ArithExpr{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		var op ArithOp
		switch p.peek().kind {
		case tokMul:
			op = ArithMul
		case tokDiv:
			op = ArithDiv
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if err := checkOperand(left, "arithmetic"); err != nil {
			return nil, err
		}
		if err := checkOperand(right, "arithmetic"); err != nil {
			return nil, err
		}
		left = &ArithExpr{Op: op, Left: left, Right: right}
	}
}

// knownFields mirrors market.Fields; kept local so the parser has no
// dependency on the data layer.
var knownFields = map[string]bool{
	"open":   true,
	"high":   true,
	"low":    true,
	"close":  true,
	"volume": true,
}

func (p *parser) parseAtom() (Expr, error) {
	t := p.peek()

	switch t.kind {
	case tokNumber:
		p.advance()
		return parseLiteral(t)

	case tokLParen:
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if close := p.peek(); close.kind != tokRParen {
			return nil, syntaxErr(close.pos, `")"`, close.describe())
		}
		p.advance()
		return inner, nil

	case tokIdent:
		name := strings.ToLower(t.text)
		switch name {
		case "sma":
			return p.parseIndicator(IndSMA)
		case "rsi":
			return p.parseIndicator(IndRSI)
		case "and", "or", "entry", "exit", "crosses", "above", "below":
			return nil, syntaxErr(t.pos, "expression", t.describe())
		}
		p.advance()
		if !knownFields[name] {
			return nil, semanticErr("unknown field or indicator %q", t.text)
		}
		return &FieldRef{Name: name}, nil
	}

	return nil, syntaxErr(t.pos, "expression", t.describe())
}

// parseIndicator parses NAME(field, window) with the NAME token current.
func (p *parser) parseIndicator(kind IndicatorKind) (Expr, error) {
	p.advance() // indicator name

	if open := p.peek(); open.kind != tokLParen {
		return nil, syntaxErr(open.pos, `"(" after `+kind.String(), open.describe())
	}
	p.advance()

	fieldTok := p.peek()
	if fieldTok.kind != tokIdent {
		return nil, syntaxErr(fieldTok.pos, "field name", fieldTok.describe())
	}
	p.advance()
	fieldName := strings.ToLower(fieldTok.text)
	if !knownFields[fieldName] {
		return nil, semanticErr("unknown field %q in %s call", fieldTok.text, kind)
	}

	if comma := p.peek(); comma.kind != tokComma {
		return nil, syntaxErr(comma.pos, `","`, comma.describe())
	}
	p.advance()

	winTok := p.peek()
	if winTok.kind != tokNumber {
		return nil, syntaxErr(winTok.pos, "window length", winTok.describe())
	}
	p.advance()
	lit, err := parseLiteral(winTok)
	if err != nil {
		return nil, err
	}
	window := lit.(*Literal).Scaled()
	if window != math.Trunc(window) {
		return nil, semanticErr("%s window must be a whole number, got %s", kind, winTok.text)
	}
	if window < 1 {
		return nil, semanticErr("%s window must be positive, got %s", kind, winTok.text)
	}

	if close := p.peek(); close.kind != tokRParen {
		return nil, syntaxErr(close.pos, `")"`, close.describe())
	}
	p.advance()

	return &IndicatorCall{
		Kind:   kind,
		Field:  &FieldRef{Name: fieldName},
		Window: int(window),
	}, nil
}

func parseLiteral(t token) (Expr, error) {
	text := t.text
	unit := UnitNone
	if n := len(text); n > 0 {
		switch text[n-1] {
		case 'K', 'k':
			unit = UnitThousand
			text = text[:n-1]
		case 'M', 'm':
			unit = UnitMillion
			text = text[:n-1]
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, syntaxErr(t.pos, "number", t.describe())
	}
	return &Literal{Value: v, Unit: unit}, nil
}

func cmpOpFor(k tokenKind) (CmpOp, bool) {
	switch k {
	case tokGT:
		return CmpGT, true
	case tokLT:
		return CmpLT, true
	case tokGE:
		return CmpGE, true
	case tokLE:
		return CmpLE, true
	case tokEQ:
		return CmpEQ, true
	}
	return 0, false
}

func isCmpToken(k tokenKind) bool {
	_, ok := cmpOpFor(k)
	return ok
}

// checkOperand rejects boolean sub-expressions where a numeric series is
// required.
func checkOperand(e Expr, where string) error {
	if IsBoolean(e) {
		return semanticErr("%s operand must be a value, got %s", where, describe(e))
	}
	return nil
}

package dsl

import (
	"fmt"
)

// lexer tokenizes rule text. Whitespace and newlines are insignificant;
// block boundaries are recovered by the parser from ENTRY/EXIT keywords.
type lexer struct {
	src string
	off int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

// next returns the next token. At end of input it returns tokEOF forever.
func (l *lexer) next() (token, error) {
	for l.off < len(l.src) && isSpace(l.src[l.off]) {
		l.off++
	}
	if l.off >= len(l.src) {
		return token{kind: tokEOF, pos: l.off}, nil
	}

	start := l.off
	c := l.src[l.off]

	switch {
	case isDigit(c):
		return l.scanNumber()
	case isAlpha(c):
		for l.off < len(l.src) && (isAlpha(l.src[l.off]) || isDigit(l.src[l.off])) {
			l.off++
		}
		return token{kind: tokIdent, text: l.src[start:l.off], pos: start}, nil
	}

	l.off++
	switch c {
	case '>':
		if l.off < len(l.src) && l.src[l.off] == '=' {
			l.off++
			return token{kind: tokGE, text: ">=", pos: start}, nil
		}
		return token{kind: tokGT, text: ">", pos: start}, nil
	case '<':
		if l.off < len(l.src) && l.src[l.off] == '=' {
			l.off++
			return token{kind: tokLE, text: "<=", pos: start}, nil
		}
		return token{kind: tokLT, text: "<", pos: start}, nil
	case '=':
		if l.off < len(l.src) && l.src[l.off] == '=' {
			l.off++
			return token{kind: tokEQ, text: "==", pos: start}, nil
		}
		return token{}, syntaxErr(start, "operator", fmt.Sprintf("%q (did you mean ==?)", "="))
	case '+':
		return token{kind: tokAdd, text: "+", pos: start}, nil
	case '-':
		return token{kind: tokSub, text: "-", pos: start}, nil
	case '*':
		return token{kind: tokMul, text: "*", pos: start}, nil
	case '/':
		return token{kind: tokDiv, text: "/", pos: start}, nil
	case '(':
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case ')':
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case ',':
		return token{kind: tokComma, text: ",", pos: start}, nil
	case ':':
		return token{kind: tokColon, text: ":", pos: start}, nil
	}

	return token{}, syntaxErr(start, "token", fmt.Sprintf("%q", string(c)))
}

// scanNumber matches digits(.digits)? with an optional K or M suffix.
// The suffix must touch the number: "1.5K", not "1.5 K".
func (l *lexer) scanNumber() (token, error) {
	start := l.off
	for l.off < len(l.src) && isDigit(l.src[l.off]) {
		l.off++
	}
	if l.off < len(l.src) && l.src[l.off] == '.' {
		l.off++
		if l.off >= len(l.src) || !isDigit(l.src[l.off]) {
			return token{}, syntaxErr(l.off, "digit after decimal point", "none")
		}
		for l.off < len(l.src) && isDigit(l.src[l.off]) {
			l.off++
		}
	}
	if l.off < len(l.src) {
		switch l.src[l.off] {
		case 'K', 'k', 'M', 'm':
			// A letter run like "100ms" is not a suffixed number.
			if l.off+1 >= len(l.src) || !isAlpha(l.src[l.off+1]) {
				l.off++
			}
		}
	}
	return token{kind: tokNumber, text: l.src[start:l.off], pos: start}, nil
}

// lex tokenizes the whole input eagerly so the parser gets one-token
// lookahead for free.
func lex(src string) ([]token, error) {
	l := newLexer(src)
	var out []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if t.kind == tokEOF {
			return out, nil
		}
	}
}

package dsl

import "fmt"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokGT  // >
	tokLT  // <
	tokGE  // >=
	tokLE  // <=
	tokEQ  // ==
	tokAdd // +
	tokSub // -
	tokMul // *
	tokDiv // /
	tokLParen
	tokRParen
	tokComma
	tokColon
)

// token is one lexical unit. Text preserves the original spelling; keyword
// matching is case-insensitive and done by the parser.
type token struct {
	kind tokenKind
	text string
	pos  int // byte offset of the first character
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return fmt.Sprintf("identifier %q", t.text)
	case tokNumber:
		return fmt.Sprintf("number %q", t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

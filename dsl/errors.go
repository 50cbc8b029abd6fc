package dsl

import "fmt"

// SyntaxError reports a malformed token sequence. Pos is a byte offset into
// the rule text.
type SyntaxError struct {
	Pos      int
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// SemanticError reports rule text that lexes and parses but references an
// unknown field or indicator, carries an invalid window, is ill-typed, or
// declares the same block twice.
type SemanticError struct {
	Reason string
}

func (e *SemanticError) Error() string {
	return "semantic error: " + e.Reason
}

func syntaxErr(pos int, expected string, found string) error {
	return &SyntaxError{Pos: pos, Expected: expected, Found: found}
}

func semanticErr(format string, args ...any) error {
	return &SemanticError{Reason: fmt.Sprintf(format, args...)}
}

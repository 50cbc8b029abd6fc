package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token) []tokenKind {
	out := make([]tokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.kind
	}
	return out
}

func TestLexOperatorsAndNumbers(t *testing.T) {
	toks, err := lex("close >= 1.5K AND (volume < 2M)")
	require.NoError(t, err)

	assert.Equal(t, []tokenKind{
		tokIdent, tokGE, tokNumber, tokIdent,
		tokLParen, tokIdent, tokLT, tokNumber, tokRParen,
		tokEOF,
	}, kinds(toks))

	assert.Equal(t, "1.5K", toks[2].text)
	assert.Equal(t, "2M", toks[7].text)
}

func TestLexTracksPositions(t *testing.T) {
	toks, err := lex("close > 100")
	require.NoError(t, err)
	assert.Equal(t, 0, toks[0].pos)
	assert.Equal(t, 6, toks[1].pos)
	assert.Equal(t, 8, toks[2].pos)
}

func TestLexSuffixNeedsToTouchNumber(t *testing.T) {
	// "1 K" is a number followed by an identifier, not a scaled literal.
	toks, err := lex("1 K")
	require.NoError(t, err)
	assert.Equal(t, []tokenKind{tokNumber, tokIdent, tokEOF}, kinds(toks))
	assert.Equal(t, "1", toks[0].text)
}

func TestLexSuffixInsideWordIsIdentifier(t *testing.T) {
	// "100ms" must not lex as the scaled number 100M followed by "s".
	toks, err := lex("100ms")
	require.NoError(t, err)
	assert.Equal(t, "100", toks[0].text)
	assert.Equal(t, tokIdent, toks[1].kind)
	assert.Equal(t, "ms", toks[1].text)
}

func TestLexRejectsSingleEquals(t *testing.T) {
	_, err := lex("close = 100")
	require.Error(t, err)
	var se *SyntaxError
	assert.ErrorAs(t, err, &se)
}

func TestLexRejectsUnknownRune(t *testing.T) {
	_, err := lex("close > 100 #")
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 12, se.Pos)
}

func TestLexEmptyInput(t *testing.T) {
	toks, err := lex("   \n\t ")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, tokEOF, toks[0].kind)
}

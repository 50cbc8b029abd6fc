package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRoundTrip(t *testing.T) {
	rules := []string{
		"ENTRY: close > 100",
		"EXIT: RSI(close,14) < 30",
		"ENTRY: close > SMA(close,20) AND volume > 1M\nEXIT: RSI(close,14) < 30",
		"ENTRY: (close > 100 OR volume > 1.5K) AND close crosses above SMA(close,20)",
		"ENTRY: close - open > 2 * low",
		"ENTRY: (close + high) / 2 > SMA(close,50)",
		"ENTRY: close crosses below SMA(close,200)",
		"ENTRY: close >= 99.5 OR close <= 10",
	}

	for _, rule := range rules {
		t.Run(rule, func(t *testing.T) {
			first, err := Parse(rule)
			require.NoError(t, err)

			text := Format(first)
			second, err := Parse(text)
			require.NoError(t, err, "formatted text must re-parse: %q", text)

			assert.Equal(t, first, second, "round trip changed the AST for %q", text)
			assert.Equal(t, text, Format(second), "formatting must be stable")
		})
	}
}

func TestFormatPreservesUnits(t *testing.T) {
	st, err := Parse("ENTRY: volume > 1.5M")
	require.NoError(t, err)
	assert.Equal(t, "ENTRY: volume > 1.5M", Format(st))
}

func TestFormatParenthesizesLooserChildren(t *testing.T) {
	st, err := Parse("ENTRY: (close > 1 OR close < 2) AND volume > 3")
	require.NoError(t, err)
	assert.Equal(t, "ENTRY: (close > 1 OR close < 2) AND volume > 3", Format(st))

	st, err = Parse("ENTRY: (close + open) * 2 > 100")
	require.NoError(t, err)
	assert.Equal(t, "ENTRY: (close + open) * 2 > 100", Format(st))
}

func TestFormatExprSingleNode(t *testing.T) {
	assert.Equal(t, "SMA(close,20)", FormatExpr(&IndicatorCall{
		Kind:   IndSMA,
		Field:  &FieldRef{Name: "close"},
		Window: 20,
	}))
}

func TestFormatEmptyStrategy(t *testing.T) {
	assert.Equal(t, "", Format(&Strategy{}))
}

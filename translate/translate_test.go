package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carnage203/nl-to-dsl-strategy-compiler/dsl"
)

// translateAndParse asserts the translation parses cleanly, which is the
// contract the CLI's --check flag relies on.
func translateAndParse(t *testing.T, english string) string {
	t.Helper()
	out := Translate(english)
	_, err := dsl.Parse(out)
	require.NoError(t, err, "translation %q must parse", out)
	return out
}

func TestTranslateCrossWithVolumeFilter(t *testing.T) {
	out := translateAndParse(t, "Buy when close crosses above sma-20 and volume > 1M")
	assert.Equal(t, "ENTRY: close crosses above SMA(close,20) AND volume > 1M", out)
}

func TestTranslateEntryAndExitSentences(t *testing.T) {
	out := translateAndParse(t, "Buy when price > 100. Sell when rsi < 30.")
	assert.Equal(t, "ENTRY: close > 100\nEXIT: RSI(close,14) < 30", out)
}

func TestTranslatePriceAlias(t *testing.T) {
	out := translateAndParse(t, "enter when the closing price > 50")
	assert.Equal(t, "ENTRY: close > 50", out)
}

func TestTranslateMovingAverageSpellings(t *testing.T) {
	cases := map[string]string{
		"buy when price > 20-day moving average":   "ENTRY: close > SMA(close,20)",
		"buy when price > sma-50":                  "ENTRY: close > SMA(close,50)",
		"buy when price > 200 day sma":             "ENTRY: close > SMA(close,200)",
		"buy when close crosses over ma-20":        "ENTRY: close crosses above SMA(close,20)",
		"sell when close crosses under ma 50":      "EXIT: close crosses below SMA(close,50)",
	}
	for english, want := range cases {
		t.Run(english, func(t *testing.T) {
			assert.Equal(t, want, translateAndParse(t, english))
		})
	}
}

func TestTranslateRSIWindowSpellings(t *testing.T) {
	out := translateAndParse(t, "sell when rsi(7) > 70")
	assert.Equal(t, "EXIT: RSI(close,7) > 70", out)

	out = translateAndParse(t, "exit when rsi-21 < 30")
	assert.Equal(t, "EXIT: RSI(close,21) < 30", out)
}

func TestTranslateSpelledOutMagnitudes(t *testing.T) {
	out := translateAndParse(t, "buy when volume > 2 million")
	assert.Equal(t, "ENTRY: volume > 2M", out)

	out = translateAndParse(t, "buy when vol > 500 thousand")
	assert.Equal(t, "ENTRY: volume > 500K", out)
}

func TestTranslateBareCrossGetsCloseOperand(t *testing.T) {
	out := translateAndParse(t, "enter when crosses above sma-50")
	assert.Equal(t, "ENTRY: close crosses above SMA(close,50)", out)
}

func TestTranslateGoLongMarker(t *testing.T) {
	out := translateAndParse(t, "go long when price crosses over sma-20")
	assert.Equal(t, "ENTRY: close crosses above SMA(close,20)", out)
}

func TestTranslateSentenceWithoutMarkerDefaultsToEntry(t *testing.T) {
	out := translateAndParse(t, "volume > 1.5M")
	assert.Equal(t, "ENTRY: volume > 1.5M", out)
}

func TestTranslateCloseIsNotAnExitMarker(t *testing.T) {
	// "close" names a field; its presence alone must not flip a buy
	// sentence into an EXIT block or get stripped from the condition.
	out := translateAndParse(t, "buy when close > 100")
	assert.Equal(t, "ENTRY: close > 100", out)
}

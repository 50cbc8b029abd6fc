// Package translate rewrites free-form English trading rules into rule text
// the dsl package can parse. It is pattern-based and best-effort: the output
// either conforms to the rule grammar or fails downstream in the parser.
package translate

import (
	"regexp"
	"strings"
)

type rule struct {
	pattern *regexp.Regexp
	replace string
}

// Rewrites run in order; later rules see the output of earlier ones.
var rewrites = []rule{
	// filler words
	{regexp.MustCompile(`\bthe\b`), ""},

	// price aliases
	{regexp.MustCompile(`\bclosing price\b`), "close"},
	{regexp.MustCompile(`\bclose price\b`), "close"},
	{regexp.MustCompile(`\bprice\b`), "close"},

	// moving-average spellings
	{regexp.MustCompile(`\b(\d+)[-\s]?day moving average\b`), "SMA(close,$1)"},
	{regexp.MustCompile(`\bsma[-\s]?(\d+)\b`), "SMA(close,$1)"},
	{regexp.MustCompile(`\b(\d+)[-\s]?day sma\b`), "SMA(close,$1)"},
	{regexp.MustCompile(`\bmoving average[-\s]?(\d+)\b`), "SMA(close,$1)"},
	{regexp.MustCompile(`\bma[-\s]?(\d+)\b`), "SMA(close,$1)"},

	// rsi spellings; bare "rsi" defaults to 14
	{regexp.MustCompile(`\brsi[-\s]?\(?(\d+)\)?\b`), "RSI(close,$1)"},
	{regexp.MustCompile(`\brsi\b`), "RSI(close,14)"},

	// spelled-out magnitudes
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*million\b`), "${1}M"},
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*m\b`), "${1}M"},
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*thousand\b`), "${1}K"},
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*k\b`), "${1}K"},

	// cross-event synonyms
	{regexp.MustCompile(`\bcrosses? over\b`), "crosses above"},
	{regexp.MustCompile(`\bcrosses? under\b`), "crosses below"},
	{regexp.MustCompile(`\bcrosses? above\b`), "crosses above"},
	{regexp.MustCompile(`\bcrosses? below\b`), "crosses below"},

	// field aliases
	{regexp.MustCompile(`\bvol\b`), "volume"},

	// connectives to keyword case
	{regexp.MustCompile(`\band\b`), "AND"},
	{regexp.MustCompile(`\bor\b`), "OR"},
}

var (
	// "go long" sorts before "long" so the whole phrase is stripped.
	entryWords = []string{"go long", "buy", "enter", "entry", "long"}
	exitWords  = []string{"exit", "sell", "close", "stop"}

	sentenceSplit = regexp.MustCompile(`[.!?]\s+`)
	whenPrefix    = regexp.MustCompile(`^(when|if|once)\s+`)
	spaces        = regexp.MustCompile(`\s+`)
	bareCross     = regexp.MustCompile(`\bcrosses (above|below)\b`)
	fieldCross    = regexp.MustCompile(`\b(open|high|low|close|volume)\s+crosses\b`)
)

// Translate converts an English rule description into ENTRY:/EXIT: rule
// text. Sentences mentioning buy/enter/long words become ENTRY blocks,
// sell/exit words become EXIT blocks; a sentence with neither defaults to
// ENTRY.
func Translate(text string) string {
	normalized := spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")

	// Classify sentences before rewriting so marker words are still intact.
	sentences := splitSentences(normalized)

	var parts []string
	for _, s := range sentences {
		isEntry := containsAny(s, entryWords)
		isExit := containsAny(s, exitWords)

		body := applyRewrites(stripMarkers(s))
		if isExit && !isEntry {
			parts = append(parts, "EXIT: "+body)
		} else {
			parts = append(parts, "ENTRY: "+body)
		}
	}
	return strings.Join(parts, "\n")
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.Trim(s, ".!? ")
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// stripMarkers removes buy/sell trigger words and a leading "when" so only
// the condition remains. "close" is kept: it is also a field name.
func stripMarkers(s string) string {
	for _, w := range append(append([]string{}, entryWords...), exitWords...) {
		if w == "close" {
			continue
		}
		s = regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`).ReplaceAllString(s, "")
	}
	s = spaces.ReplaceAllString(s, " ")
	s = whenPrefix.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(s)
}

func applyRewrites(s string) string {
	for _, r := range rewrites {
		s = r.pattern.ReplaceAllString(s, r.replace)
	}
	// "crosses above X" with no left operand means the close price.
	if bareCross.MatchString(s) && !fieldCross.MatchString(s) {
		s = bareCross.ReplaceAllString(s, "close crosses $1")
	}
	return spaces.ReplaceAllString(strings.TrimSpace(s), " ")
}

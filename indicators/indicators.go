// Package indicators provides moving-window statistics over price series.
//
// All functions are pure: each call is reproducible from the input series
// alone, with no state carried between calls. Bars where an indicator is not
// yet defined hold NaN; comparisons against NaN are always false, which is
// exactly the propagation the signal compiler needs.
package indicators

import (
	"fmt"
	"math"
)

// Undefined is the sentinel for bars where an indicator has no value yet.
var Undefined = math.NaN()

// IsDefined reports whether v is a real indicator value.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}

// SMA returns the simple moving average of the trailing window values ending
// at each bar inclusive. The first window-1 bars are Undefined.
func SMA(series []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("sma: window must be positive, got %d", window)
	}

	out := make([]float64, len(series))
	for i := range out {
		if i < window-1 {
			out[i] = Undefined
			continue
		}
		out[i] = mean(series[i-window+1 : i+1])
	}
	return out, nil
}

// RSI returns the relative-strength oscillator over bar-to-bar differences.
//
// At each bar the trailing window differences are split into gains and
// losses; the result is 100 - 100/(1 + avgGain/avgLoss), defined as 100 when
// avgLoss is zero. The first window bars are Undefined because the first
// difference only exists at bar 1.
func RSI(series []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rsi: window must be positive, got %d", window)
	}

	diffs := make([]float64, len(series))
	for i := 1; i < len(series); i++ {
		diffs[i] = series[i] - series[i-1]
	}

	out := make([]float64, len(series))
	for i := range out {
		if i < window {
			out[i] = Undefined
			continue
		}
		out[i] = rsiFromDiffs(diffs[i-window+1:i+1], window)
	}
	return out, nil
}

// mean sums the window from scratch so batch and streaming paths agree
// bit-for-bit.
func mean(window []float64) float64 {
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}

func rsiFromDiffs(diffs []float64, window int) float64 {
	gain := 0.0
	loss := 0.0
	for _, d := range diffs {
		if d > 0 {
			gain += d
		} else if d < 0 {
			loss += -d
		}
	}

	avgGain := gain / float64(window)
	avgLoss := loss / float64(window)

	if avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}

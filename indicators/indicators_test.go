package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	out, err := SMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.False(t, IsDefined(out[0]))
	assert.False(t, IsDefined(out[1]))
	assert.Equal(t, 2.0, out[2])
	assert.Equal(t, 3.0, out[3])
	assert.Equal(t, 4.0, out[4])
}

func TestSMAWindowLongerThanSeries(t *testing.T) {
	out, err := SMA([]float64{1, 2}, 3)
	require.NoError(t, err)
	for i, v := range out {
		assert.False(t, IsDefined(v), "bar %d should be undefined", i)
	}
}

func TestSMAWindowOne(t *testing.T) {
	out, err := SMA([]float64{3.5, 7}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5, 7}, out)
}

func TestSMARejectsBadWindow(t *testing.T) {
	_, err := SMA([]float64{1}, 0)
	assert.Error(t, err)
	_, err = SMA([]float64{1}, -3)
	assert.Error(t, err)
}

func TestRSIAllGains(t *testing.T) {
	out, err := RSI([]float64{1, 2, 3, 4, 5, 6}, 3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.False(t, IsDefined(out[i]), "bar %d should be undefined", i)
	}
	// Monotonically rising series has zero average loss.
	for i := 3; i < len(out); i++ {
		assert.Equal(t, 100.0, out[i], "bar %d", i)
	}
}

func TestRSIAllLosses(t *testing.T) {
	out, err := RSI([]float64{6, 5, 4, 3, 2, 1}, 3)
	require.NoError(t, err)
	for i := 3; i < len(out); i++ {
		assert.Equal(t, 0.0, out[i], "bar %d", i)
	}
}

func TestRSIMixedMoves(t *testing.T) {
	// Diffs: +1, -0.5, +1. Window 2 at bar 2 sees [+1, -0.5]:
	// avgGain 0.5, avgLoss 0.25, RS 2, RSI 100 - 100/3.
	out, err := RSI([]float64{10, 11, 10.5, 11.5}, 2)
	require.NoError(t, err)

	assert.False(t, IsDefined(out[0]))
	assert.False(t, IsDefined(out[1]))
	assert.InDelta(t, 100-100.0/3, out[2], 1e-12)
	// Bar 3 sees [-0.5, +1]: same balance of gains and losses.
	assert.InDelta(t, 100-100.0/3, out[3], 1e-12)
}

func TestRSIFlatSeries(t *testing.T) {
	// No movement means no losses, which pins RSI at 100.
	out, err := RSI([]float64{5, 5, 5, 5}, 2)
	require.NoError(t, err)
	assert.Equal(t, 100.0, out[2])
	assert.Equal(t, 100.0, out[3])
}

func TestUndefinedSentinel(t *testing.T) {
	assert.True(t, math.IsNaN(Undefined))
	assert.False(t, IsDefined(Undefined))
	assert.True(t, IsDefined(0))

	// NaN compares false against everything, so undefined bars can never
	// fire a signal.
	assert.False(t, Undefined > 0)
	assert.False(t, Undefined < 0)
	assert.False(t, Undefined == Undefined)
}

package indicators

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSeries(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	price := 100.0
	for i := range out {
		price += rng.NormFloat64()
		out[i] = price
	}
	return out
}

func TestSlidingSMAMatchesBatch(t *testing.T) {
	series := randomSeries(200, 7)
	batch, err := SMA(series, 20)
	require.NoError(t, err)

	s := NewSlidingSMA(20)
	for i, v := range series {
		s.Update(v)
		if i < s.Warmup()-1 {
			assert.False(t, s.Ready(), "bar %d", i)
			assert.False(t, IsDefined(s.Value()), "bar %d", i)
			continue
		}
		require.True(t, s.Ready(), "bar %d", i)
		assert.Equal(t, batch[i], s.Value(), "bar %d", i)
	}
}

func TestSlidingRSIMatchesBatch(t *testing.T) {
	series := randomSeries(200, 11)
	batch, err := RSI(series, 14)
	require.NoError(t, err)

	r := NewSlidingRSI(14)
	for i, v := range series {
		r.Update(v)
		if i < r.Warmup()-1 {
			assert.False(t, r.Ready(), "bar %d", i)
			continue
		}
		require.True(t, r.Ready(), "bar %d", i)
		assert.Equal(t, batch[i], r.Value(), "bar %d", i)
	}
}

func TestSlidingSMAReset(t *testing.T) {
	s := NewSlidingSMA(2)
	s.Update(1)
	s.Update(2)
	require.True(t, s.Ready())

	s.Reset()
	assert.False(t, s.Ready())
	assert.False(t, IsDefined(s.Value()))

	s.Update(4)
	s.Update(6)
	assert.Equal(t, 5.0, s.Value())
}

func TestSlidingRSIReset(t *testing.T) {
	r := NewSlidingRSI(2)
	for _, v := range []float64{1, 2, 3} {
		r.Update(v)
	}
	require.True(t, r.Ready())

	r.Reset()
	assert.False(t, r.Ready())

	// Rising replay after reset pins RSI at 100 again.
	for _, v := range []float64{1, 2, 3} {
		r.Update(v)
	}
	assert.Equal(t, 100.0, r.Value())
}

func TestStreamingNames(t *testing.T) {
	assert.Equal(t, "SMA(20)", NewSlidingSMA(20).Name())
	assert.Equal(t, "RSI(14)", NewSlidingRSI(14).Name())
}

package market

import (
	"math"
	"math/rand"
	"time"
)

// Synthetic generates n daily candles as a seeded random walk starting at
// 100. The same seed always produces the same series, which keeps demo runs
// and tests reproducible.
func Synthetic(n int, seed int64) Series {
	rng := rand.New(rand.NewSource(seed))
	out := make(Series, 0, n)

	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 100.0

	for i := 0; i < n; i++ {
		open := price
		drift := rng.NormFloat64() * 0.8
		close := open + drift
		high := math.Max(open, close) + rng.Float64()
		low := math.Min(open, close) - rng.Float64()
		volume := float64(500_000 + rng.Intn(1_500_000))

		out = append(out, Candle{
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
			Time:   day,
		})

		price = close
		day = day.AddDate(0, 0, 1)
	}
	return out
}

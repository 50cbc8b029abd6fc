package indicators

import "fmt"

// Streaming computes a single indicator value from a stream of prices.
// Deterministic: replaying the same values always yields the same output.
type Streaming interface {
	// Name returns a stable identifier like "SMA(20)" or "RSI(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next bar's value.
	Update(v float64)

	// Ready reports whether Value() is defined (warmup completed).
	Ready() bool

	// Value returns the current indicator value, or Undefined before Ready.
	Value() float64
}

// SlidingSMA is a streaming simple moving average over a fixed window.
type SlidingSMA struct {
	window int
	values []float64
}

// NewSlidingSMA creates a streaming SMA with the given window.
func NewSlidingSMA(window int) *SlidingSMA {
	return &SlidingSMA{
		window: window,
		values: make([]float64, 0, window),
	}
}

func (m *SlidingSMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.window)
}

func (m *SlidingSMA) Warmup() int {
	return m.window
}

func (m *SlidingSMA) Reset() {
	m.values = m.values[:0]
}

func (m *SlidingSMA) Update(v float64) {
	m.values = append(m.values, v)
	// Keep only the trailing window values
	if len(m.values) > m.window {
		m.values = m.values[1:]
	}
}

func (m *SlidingSMA) Ready() bool {
	return len(m.values) >= m.window
}

func (m *SlidingSMA) Value() float64 {
	if !m.Ready() {
		return Undefined
	}
	return mean(m.values)
}

// SlidingRSI is a streaming relative-strength oscillator over a fixed window
// of bar-to-bar differences.
type SlidingRSI struct {
	window  int
	diffs   []float64
	prev    float64
	hasPrev bool
}

// NewSlidingRSI creates a streaming RSI with the given window.
func NewSlidingRSI(window int) *SlidingRSI {
	return &SlidingRSI{
		window: window,
		diffs:  make([]float64, 0, window),
	}
}

func (r *SlidingRSI) Name() string {
	return fmt.Sprintf("RSI(%d)", r.window)
}

// Warmup is window+1 bars: the first difference needs two values.
func (r *SlidingRSI) Warmup() int {
	return r.window + 1
}

func (r *SlidingRSI) Reset() {
	r.diffs = r.diffs[:0]
	r.prev = 0
	r.hasPrev = false
}

func (r *SlidingRSI) Update(v float64) {
	if r.hasPrev {
		r.diffs = append(r.diffs, v-r.prev)
		if len(r.diffs) > r.window {
			r.diffs = r.diffs[1:]
		}
	}
	r.prev = v
	r.hasPrev = true
}

func (r *SlidingRSI) Ready() bool {
	return len(r.diffs) >= r.window
}

func (r *SlidingRSI) Value() float64 {
	if !r.Ready() {
		return Undefined
	}
	return rsiFromDiffs(r.diffs, r.window)
}

package morph

// Selector reduces the samples under the structuring element to one output
// sample. Implementations must be pure and must not retain samples.
type Selector interface {
	Select(samples []uint8) uint8
}

// SelectorFunc adapts a plain function to Selector.
type SelectorFunc func(samples []uint8) uint8

func (f SelectorFunc) Select(samples []uint8) uint8 {
	return f(samples)
}

// FixedArity is implemented by selectors that only accept a fixed number of
// samples. Transform rejects them when the arity does not match the window.
type FixedArity interface {
	Arity() int
}

type fixedArity struct {
	n  int
	fn SelectorFunc
}

func (f fixedArity) Select(samples []uint8) uint8 {
	return f.fn(samples)
}

func (f fixedArity) Arity() int {
	return f.n
}

// WithArity declares that fn is only defined for exactly n samples.
func WithArity(n int, fn SelectorFunc) Selector {
	return fixedArity{n: n, fn: fn}
}

var (
	Min            Selector = SelectorFunc(minSample)
	Max            Selector = SelectorFunc(maxSample)
	MedianSelector Selector = SelectorFunc(medianSample)
)

func minSample(samples []uint8) uint8 {
	if len(samples) == 0 {
		return 0
	}

	m := samples[0]
	for _, s := range samples[1:] {
		if s < m {
			m = s
		}
	}
	return m
}

func maxSample(samples []uint8) uint8 {
	var m uint8
	for _, s := range samples {
		if s > m {
			m = s
		}
	}
	return m
}

// medianSample returns the lower median using a counting histogram.
func medianSample(samples []uint8) uint8 {
	if len(samples) == 0 {
		return 0
	}

	var hist [256]int
	for _, s := range samples {
		hist[s]++
	}

	rank := (len(samples) - 1) / 2
	seen := 0
	for v, count := range hist {
		seen += count
		if seen > rank {
			return uint8(v)
		}
	}

	return 255
}

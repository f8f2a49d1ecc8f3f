package pipeline

import (
	"math"

	"erosion-engine/internal/morph"

	"gonum.org/v1/gonum/stat"
)

type GridStats struct {
	Mean   float64
	StdDev float64
	Min    uint8
	Max    uint8
}

func (s GridStats) fields(prefix string) map[string]interface{} {
	return map[string]interface{}{
		prefix + "_mean":   s.Mean,
		prefix + "_stddev": s.StdDev,
		prefix + "_min":    s.Min,
		prefix + "_max":    s.Max,
	}
}

func CalculateStats(g *morph.Grid) GridStats {
	if g == nil || len(g.Pix) == 0 {
		return GridStats{}
	}

	values := make([]float64, len(g.Pix))
	lo, hi := g.Pix[0], g.Pix[0]
	for i, v := range g.Pix {
		values[i] = float64(v)
		lo = min(lo, v)
		hi = max(hi, v)
	}

	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}

	return GridStats{Mean: mean, StdDev: std, Min: lo, Max: hi}
}

// CalculatePSNR returns the peak signal to noise ratio in dB between two grids
// of equal shape, +Inf when they are identical and 0 when shapes differ.
func CalculatePSNR(original, processed *morph.Grid) float64 {
	if original == nil || processed == nil {
		return 0.0
	}

	if original.Width != processed.Width || original.Height != processed.Height {
		return 0.0
	}

	var sum float64
	for i := range original.Pix {
		d := float64(original.Pix[i]) - float64(processed.Pix[i])
		sum += d * d
	}

	mse := sum / float64(len(original.Pix))
	if mse == 0 {
		return math.Inf(1)
	}

	return 10 * math.Log10(255*255/mse)
}

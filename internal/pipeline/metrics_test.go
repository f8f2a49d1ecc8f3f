package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erosion-engine/internal/morph"
)

func TestCalculateStats(t *testing.T) {
	g, err := morph.GridFromPix(2, 2, []uint8{2, 4, 4, 6})
	require.NoError(t, err)

	s := CalculateStats(g)
	assert.InDelta(t, 4.0, s.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(8.0/3.0), s.StdDev, 1e-9)
	assert.Equal(t, uint8(2), s.Min)
	assert.Equal(t, uint8(6), s.Max)

	single, err := morph.GridFromPix(1, 1, []uint8{9})
	require.NoError(t, err)
	assert.Equal(t, GridStats{Mean: 9, Min: 9, Max: 9}, CalculateStats(single))
}

func TestCalculatePSNR(t *testing.T) {
	a, err := morph.GridFromPix(2, 1, []uint8{0, 0})
	require.NoError(t, err)
	b, err := morph.GridFromPix(2, 1, []uint8{0, 255})
	require.NoError(t, err)
	c, err := morph.GridFromPix(1, 2, []uint8{0, 0})
	require.NoError(t, err)

	assert.True(t, math.IsInf(CalculatePSNR(a, a), 1))
	assert.InDelta(t, 10*math.Log10(2), CalculatePSNR(a, b), 1e-9)
	assert.Zero(t, CalculatePSNR(a, c))
	assert.Zero(t, CalculatePSNR(nil, a))
}

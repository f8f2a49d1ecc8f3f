package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erosion-engine/internal/morph"
)

func TestGridMatRoundTrip(t *testing.T) {
	g, err := morph.NewGrid(5, 3)
	require.NoError(t, err)
	for i := range g.Pix {
		g.Pix[i] = uint8(250 - i)
	}

	mat, err := GridToMat(g, nil)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 3, mat.Rows())
	assert.Equal(t, 5, mat.Cols())

	back, err := MatToGrid(mat)
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
}

func TestGridToMatNil(t *testing.T) {
	_, err := GridToMat(nil, nil)
	assert.ErrorIs(t, err, morph.ErrNilGrid)
}

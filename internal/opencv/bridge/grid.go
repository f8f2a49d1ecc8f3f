package bridge

import (
	"fmt"

	"erosion-engine/internal/morph"
	"erosion-engine/internal/opencv/safe"
)

// MatToGrid copies a single channel 8-bit Mat into a grid.
func MatToGrid(mat *safe.Mat) (*morph.Grid, error) {
	if err := safe.ValidateMatForOperation(mat, "MatToGrid"); err != nil {
		return nil, err
	}

	if channels := mat.Channels(); channels != 1 {
		return nil, fmt.Errorf("MatToGrid requires 1 channel, got %d", channels)
	}

	data, err := mat.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to read Mat pixels: %w", err)
	}

	return morph.GridFromPix(mat.Cols(), mat.Rows(), data)
}

func GridToMat(g *morph.Grid, tracker safe.MemoryTracker) (*safe.Mat, error) {
	if g == nil {
		return nil, morph.ErrNilGrid
	}

	return safe.NewMatFromBytes(g.Height, g.Width, g.Pix, tracker, "grid")
}

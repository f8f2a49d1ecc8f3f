package imagefile

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erosion-engine/internal/morph"
)

func testGrid(t *testing.T) *morph.Grid {
	t.Helper()
	g, err := morph.NewGrid(9, 6)
	require.NoError(t, err)
	for i := range g.Pix {
		g.Pix[i] = uint8(i * 4)
	}
	return g
}

func TestLosslessRoundTrip(t *testing.T) {
	c := New()
	g := testGrid(t)

	for _, ext := range []string{".png", ".bmp", ".tif", ".webp"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "grid"+ext)
			require.NoError(t, c.Save(path, g))

			loaded, err := c.Load(path)
			require.NoError(t, err)
			assert.True(t, g.Equal(loaded))
		})
	}
}

func TestJPEGKeepsShape(t *testing.T) {
	c := New()
	g := testGrid(t)

	path := filepath.Join(t.TempDir(), "grid.jpg")
	require.NoError(t, c.Save(path, g))

	loaded, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, g.Width, loaded.Width)
	assert.Equal(t, g.Height, loaded.Height)
}

func TestUnsupportedFormat(t *testing.T) {
	c := New()

	err := c.Save(filepath.Join(t.TempDir(), "grid.xyz"), testGrid(t))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New().Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestImageToGridReducesColour(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 12, 21))
	img.Set(10, 20, color.NRGBA{R: 255, A: 255})
	img.Set(11, 20, color.NRGBA{R: 200, G: 200, B: 200, A: 255})

	g, err := ImageToGrid(img)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Width)
	assert.Equal(t, 1, g.Height)
	assert.Equal(t, uint8(76), g.At(0, 0))
	assert.Equal(t, uint8(200), g.At(1, 0))
}

func TestGridToImageCopies(t *testing.T) {
	g := testGrid(t)
	img := GridToImage(g)
	img.Pix[0] = 99
	assert.Equal(t, uint8(0), g.Pix[0])
	assert.Equal(t, g.At(3, 2), img.GrayAt(3, 2).Y)
}

package morph

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGeometry = errors.New("invalid grid geometry")
	ErrSelectorArity   = errors.New("selection function arity mismatch")
	ErrNilSelector     = errors.New("selection function is nil")
	ErrNilGrid         = errors.New("grid is nil")
)

// Grid is a single-channel 8-bit intensity image stored row-major.
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidGeometry, width, height)
	}

	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}, nil
}

// GridFromPix copies pix into a new grid. len(pix) must equal width*height.
func GridFromPix(width, height int, pix []uint8) (*Grid, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d grid", ErrInvalidGeometry, len(pix), width, height)
	}

	copy(g.Pix, pix)
	return g, nil
}

func (g *Grid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

func (g *Grid) Set(x, y int, v uint8) {
	g.Pix[y*g.Width+x] = v
}

func (g *Grid) Clone() *Grid {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &Grid{Width: g.Width, Height: g.Height, Pix: pix}
}

func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}

	if g.Width != other.Width || g.Height != other.Height || len(g.Pix) != len(other.Pix) {
		return false
	}

	for i := range g.Pix {
		if g.Pix[i] != other.Pix[i] {
			return false
		}
	}

	return true
}

// ValidateGeometry reports whether a width x height grid can be sampled with
// the given radius using at most one reflection per coordinate.
func ValidateGeometry(width, height, radius int) error {
	if radius < 0 {
		return fmt.Errorf("%w: negative radius %d", ErrInvalidGeometry, radius)
	}

	if width < radius+1 || height < radius+1 {
		return fmt.Errorf("%w: %dx%d grid is smaller than %dx%d required for radius %d",
			ErrInvalidGeometry, width, height, radius+1, radius+1, radius)
	}

	return nil
}

func validateGrid(g *Grid, radius int) error {
	if g == nil {
		return ErrNilGrid
	}

	if len(g.Pix) != g.Width*g.Height {
		return fmt.Errorf("%w: %d samples for %dx%d grid", ErrInvalidGeometry, len(g.Pix), g.Width, g.Height)
	}

	return ValidateGeometry(g.Width, g.Height, radius)
}

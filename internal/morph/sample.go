package morph

// Reflect maps index into [0, bound) by mirroring it once at the border.
// Negative indices mirror around 0 without repeating the edge sample, indices
// past the end mirror around bound and repeat the last sample. The result is
// only in range for -bound < index < 2*bound.
func Reflect(index, bound int) int {
	if index < 0 {
		return -index
	}

	if index >= bound {
		return bound - (index - bound) - 1
	}

	return index
}

// WindowSize is the number of samples covered by a square structuring
// element of the given radius.
func WindowSize(radius int) int {
	side := 2*radius + 1
	return side * side
}

// Sample returns the (2r+1)^2 samples under the structuring element centred
// on (cx, cy). Samples are ordered with dx ascending in the outer loop and dy
// ascending in the inner loop.
func Sample(g *Grid, cx, cy, radius int) []uint8 {
	return SampleInto(make([]uint8, 0, WindowSize(radius)), g, cx, cy, radius)
}

// SampleInto is Sample appending into dst[:0].
func SampleInto(dst []uint8, g *Grid, cx, cy, radius int) []uint8 {
	dst = dst[:0]

	for dx := -radius; dx <= radius; dx++ {
		x := Reflect(cx+dx, g.Width)
		for dy := -radius; dy <= radius; dy++ {
			y := Reflect(cy+dy, g.Height)
			dst = append(dst, g.Pix[y*g.Width+x])
		}
	}

	return dst
}

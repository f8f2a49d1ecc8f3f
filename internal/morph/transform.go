package morph

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const DefaultRadius = 2

type options struct {
	radius     int
	iterations int
	workers    int
}

type Option func(*options)

// WithRadius sets the structuring element radius used by Erode, Dilate,
// Median, Open and Close.
func WithRadius(radius int) Option {
	return func(o *options) { o.radius = radius }
}

// WithIterations repeats the operation n times.
func WithIterations(n int) Option {
	return func(o *options) { o.iterations = n }
}

// WithWorkers bounds the number of row bands processed concurrently.
// n <= 0 uses GOMAXPROCS, 1 runs sequentially.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func buildOptions(opts []Option) options {
	o := options{
		radius:     DefaultRadius,
		iterations: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

func Transform(g *Grid, sel Selector, radius int, opts ...Option) (*Grid, error) {
	return TransformWithContext(context.Background(), g, sel, radius, opts...)
}

// TransformWithContext builds a new grid where every cell is sel applied to
// the neighbourhood of the matching input cell. The input is never written.
// Nothing is returned on a validation failure or cancellation.
func TransformWithContext(ctx context.Context, g *Grid, sel Selector, radius int, opts ...Option) (*Grid, error) {
	if err := validateGrid(g, radius); err != nil {
		return nil, err
	}

	if sel == nil {
		return nil, ErrNilSelector
	}

	window := WindowSize(radius)
	if fa, ok := sel.(FixedArity); ok && fa.Arity() != window {
		return nil, fmt.Errorf("%w: selector takes %d samples, radius %d gives %d",
			ErrSelectorArity, fa.Arity(), radius, window)
	}

	o := buildOptions(opts)

	out, err := NewGrid(g.Width, g.Height)
	if err != nil {
		return nil, err
	}

	rows := func(ctx context.Context, start, end int) error {
		buf := make([]uint8, 0, window)
		for y := start; y < end; y++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := out.Pix[y*out.Width : (y+1)*out.Width]
			for x := range row {
				buf = SampleInto(buf, g, x, y, radius)
				row[x] = sel.Select(buf)
			}
		}
		return nil
	}

	bands := min(o.workers, g.Height)
	if bands <= 1 {
		if err := rows(ctx, 0, g.Height); err != nil {
			return nil, err
		}
		return out, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)

	chunk := (g.Height + bands - 1) / bands
	for start := 0; start < g.Height; start += chunk {
		end := min(start+chunk, g.Height)
		eg.Go(func() error {
			return rows(egCtx, start, end)
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

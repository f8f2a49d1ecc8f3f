package morph

import (
	"context"
	"fmt"
)

// Operation is a sequence of transforms sharing one structuring element.
// Each stage is applied the configured number of iterations before the next
// stage starts.
type Operation struct {
	Name   string
	Stages []Selector
}

var (
	Erosion  = Operation{Name: "erode", Stages: []Selector{Min}}
	Dilation = Operation{Name: "dilate", Stages: []Selector{Max}}
	Median   = Operation{Name: "median", Stages: []Selector{MedianSelector}}
	Opening  = Operation{Name: "open", Stages: []Selector{Min, Max}}
	Closing  = Operation{Name: "close", Stages: []Selector{Max, Min}}
)

func (op Operation) Apply(ctx context.Context, g *Grid, opts ...Option) (*Grid, error) {
	o := buildOptions(opts)
	if o.iterations < 1 {
		return nil, fmt.Errorf("%s: iterations must be at least 1, got %d", op.Name, o.iterations)
	}

	if len(op.Stages) == 0 {
		return nil, fmt.Errorf("%s: %w", op.Name, ErrNilSelector)
	}

	current := g
	for _, sel := range op.Stages {
		for range o.iterations {
			next, err := TransformWithContext(ctx, current, sel, o.radius, WithWorkers(o.workers))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op.Name, err)
			}
			current = next
		}
	}

	return current, nil
}

// Erode replaces every sample with the minimum of its 5x5 neighbourhood
// unless WithRadius says otherwise.
func Erode(g *Grid, opts ...Option) (*Grid, error) {
	return Erosion.Apply(context.Background(), g, opts...)
}

func Dilate(g *Grid, opts ...Option) (*Grid, error) {
	return Dilation.Apply(context.Background(), g, opts...)
}

func Open(g *Grid, opts ...Option) (*Grid, error) {
	return Opening.Apply(context.Background(), g, opts...)
}

func Close(g *Grid, opts ...Option) (*Grid, error) {
	return Closing.Apply(context.Background(), g, opts...)
}

func MedianFilter(g *Grid, opts ...Option) (*Grid, error) {
	return Median.Apply(context.Background(), g, opts...)
}

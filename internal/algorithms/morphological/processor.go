package morphological

import (
	"context"
	"fmt"

	"erosion-engine/internal/morph"
)

const (
	minRadius     = 1
	maxRadius     = 15
	maxIterations = 10
)

type Processor struct {
	operation   morph.Operation
	description string
}

func NewProcessor(op morph.Operation, description string) *Processor {
	return &Processor{
		operation:   op,
		description: description,
	}
}

func (p *Processor) GetName() string {
	return p.operation.Name
}

func (p *Processor) GetDescription() string {
	return p.description
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"radius":     morph.DefaultRadius,
		"iterations": 1,
		"workers":    0, // GOMAXPROCS
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "radius", "iterations", "workers":
			if _, ok := value.(int); !ok {
				return fmt.Errorf("%s must be an integer, got %T", key, value)
			}
		default:
			return fmt.Errorf("unknown parameter %q for %s", key, p.GetName())
		}
	}

	if radius, ok := params["radius"].(int); ok {
		if radius < minRadius || radius > maxRadius {
			return fmt.Errorf("radius must be between %d and %d, got: %d", minRadius, maxRadius, radius)
		}
	}

	if iterations, ok := params["iterations"].(int); ok {
		if iterations < 1 || iterations > maxIterations {
			return fmt.Errorf("iterations must be between 1 and %d, got: %d", maxIterations, iterations)
		}
	}

	if workers, ok := params["workers"].(int); ok && workers < 0 {
		return fmt.Errorf("workers must not be negative, got: %d", workers)
	}

	return nil
}

func (p *Processor) Process(input *morph.Grid, params map[string]interface{}) (*morph.Grid, error) {
	return p.ProcessWithContext(context.Background(), input, params)
}

func (p *Processor) ProcessWithContext(ctx context.Context, input *morph.Grid, params map[string]interface{}) (*morph.Grid, error) {
	if err := p.ValidateParameters(params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	radius := p.getIntParam(params, "radius", morph.DefaultRadius)
	iterations := p.getIntParam(params, "iterations", 1)
	workers := p.getIntParam(params, "workers", 0)

	return p.operation.Apply(ctx, input,
		morph.WithRadius(radius),
		morph.WithIterations(iterations),
		morph.WithWorkers(workers),
	)
}

func (p *Processor) getIntParam(params map[string]interface{}, key string, fallback int) int {
	if value, ok := params[key].(int); ok {
		return value
	}
	return fallback
}

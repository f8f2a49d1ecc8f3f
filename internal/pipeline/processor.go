package pipeline

import (
	"context"
	"fmt"

	"erosion-engine/internal/algorithms"
	"erosion-engine/internal/logger"
)

type imageProcessor struct {
	logger logger.Logger
}

func (p *imageProcessor) ProcessImageWithContext(ctx context.Context, inputData *ImageData, algorithm algorithms.Algorithm, params map[string]interface{}) (*ImageData, error) {
	if inputData == nil || inputData.Grid == nil {
		return nil, fmt.Errorf("no input image")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	result, err := algorithm.ProcessWithContext(ctx, inputData.Grid, params)
	if err != nil {
		return nil, fmt.Errorf("algorithm processing failed: %w", err)
	}

	if result == nil {
		return nil, fmt.Errorf("algorithm returned nil result")
	}

	processedData := &ImageData{
		Grid:       result,
		Width:      result.Width,
		Height:     result.Height,
		Format:     inputData.Format,
		Path:       inputData.Path,
		Parameters: params,
	}

	p.logger.Debug("ImageProcessor", "processing completed", map[string]interface{}{
		"algorithm":   algorithm.GetName(),
		"input_size":  fmt.Sprintf("%dx%d", inputData.Width, inputData.Height),
		"output_size": fmt.Sprintf("%dx%d", processedData.Width, processedData.Height),
		"parameters":  params,
	})

	return processedData, nil
}

package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"erosion-engine/internal/algorithms"
	"erosion-engine/internal/logger"
	"erosion-engine/internal/morph"

	"github.com/google/uuid"
)

type ImageLoader interface {
	LoadFromPath(path string) (*ImageData, error)
}

type ImageSaver interface {
	SaveToPath(path string, imageData *ImageData) error
}

type ImageProcessor interface {
	ProcessImageWithContext(ctx context.Context, inputData *ImageData, algorithm algorithms.Algorithm, params map[string]interface{}) (*ImageData, error)
}

type ImageData struct {
	Grid   *morph.Grid
	Width  int
	Height int
	Format string
	Path   string
	// Parameters holds the effective algorithm parameters for processed images.
	Parameters map[string]interface{}
}

// Job describes one load, transform and save run.
type Job struct {
	Input      string
	Output     string
	Algorithm  string
	Parameters map[string]interface{}
}

type Report struct {
	RunID       string
	Algorithm   string
	Parameters  map[string]interface{}
	Width       int
	Height      int
	LoadTime    time.Duration
	ProcessTime time.Duration
	SaveTime    time.Duration
	InputStats  GridStats
	OutputStats GridStats
	PSNR        float64
}

type Coordinator struct {
	mu               sync.Mutex
	originalImage    *ImageData
	logger           logger.Logger
	codec            Codec
	algorithmManager *algorithms.Manager
	loader           ImageLoader
	processor        ImageProcessor
	saver            ImageSaver
}

func NewCoordinator(codec Codec, log logger.Logger) *Coordinator {
	coord := newCoordinator(codec, algorithms.NewManager(), log)

	log.Debug("PipelineCoordinator", "initialized", map[string]interface{}{
		"backend":    codec.Name(),
		"algorithms": coord.algorithmManager.GetAvailableAlgorithms(),
	})
	return coord
}

func newCoordinator(codec Codec, algMgr *algorithms.Manager, log logger.Logger) *Coordinator {
	return &Coordinator{
		logger:           log,
		codec:            codec,
		algorithmManager: algMgr,
		loader:           &imageLoader{codec: codec, logger: log},
		processor:        &imageProcessor{logger: log},
		saver:            &imageSaver{codec: codec, logger: log},
	}
}

func (c *Coordinator) Algorithms() *algorithms.Manager {
	return c.algorithmManager
}

func (c *Coordinator) LoadImage(path string) (*ImageData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	imageData, err := c.loader.LoadFromPath(path)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"operation": "load_image",
		})
		return nil, err
	}

	c.originalImage = imageData

	return imageData, nil
}

func (c *Coordinator) ProcessImageWithContext(ctx context.Context, algorithmName string, params map[string]interface{}) (*ImageData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.originalImage == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	algorithm, err := c.algorithmManager.GetAlgorithm(algorithmName)
	if err != nil {
		return nil, err
	}

	merged, err := c.algorithmManager.MergeParameters(algorithmName, params)
	if err != nil {
		return nil, fmt.Errorf("invalid parameters for %s: %w", algorithmName, err)
	}

	processedData, err := c.processor.ProcessImageWithContext(ctx, c.originalImage, algorithm, merged)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"algorithm": algorithmName,
		})
		return nil, err
	}

	return processedData, nil
}

func (c *Coordinator) SaveImage(path string, imageData *ImageData) error {
	return c.saver.SaveToPath(path, imageData)
}

// Run loads job.Input, applies job.Algorithm and writes job.Output. Nothing
// is written when loading or processing fails.
func (c *Coordinator) Run(ctx context.Context, job Job) (*Report, error) {
	runID := uuid.NewString()
	log := c.logger.With(map[string]interface{}{"run_id": runID})
	run := newCoordinator(c.codec, c.algorithmManager, log)

	report := &Report{RunID: runID, Algorithm: job.Algorithm}

	log.Info("PipelineCoordinator", "run started", map[string]interface{}{
		"input":     job.Input,
		"output":    job.Output,
		"algorithm": job.Algorithm,
	})

	start := time.Now()
	original, err := run.LoadImage(job.Input)
	if err != nil {
		return nil, err
	}
	report.LoadTime = time.Since(start)
	report.Width = original.Width
	report.Height = original.Height

	start = time.Now()
	processed, err := run.ProcessImageWithContext(ctx, job.Algorithm, job.Parameters)
	if err != nil {
		return nil, err
	}
	report.ProcessTime = time.Since(start)
	report.Parameters = processed.Parameters

	start = time.Now()
	if err := run.SaveImage(job.Output, processed); err != nil {
		return nil, err
	}
	report.SaveTime = time.Since(start)

	c.mu.Lock()
	c.originalImage = original
	c.mu.Unlock()

	report.InputStats = CalculateStats(original.Grid)
	report.OutputStats = CalculateStats(processed.Grid)
	report.PSNR = CalculatePSNR(original.Grid, processed.Grid)

	fields := map[string]interface{}{
		"algorithm":    job.Algorithm,
		"width":        report.Width,
		"height":       report.Height,
		"load_time":    report.LoadTime,
		"process_time": report.ProcessTime,
		"save_time":    report.SaveTime,
		"psnr_db":      report.PSNR,
	}
	for k, v := range report.InputStats.fields("input") {
		fields[k] = v
	}
	for k, v := range report.OutputStats.fields("output") {
		fields[k] = v
	}
	log.Info("PipelineCoordinator", "run completed", fields)

	return report, nil
}

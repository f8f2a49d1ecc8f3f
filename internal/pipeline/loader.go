package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"erosion-engine/internal/imagefile"
	"erosion-engine/internal/logger"
	"erosion-engine/internal/morph"
	"erosion-engine/internal/opencv/codec"
	"erosion-engine/internal/opencv/memory"
)

const (
	BackendOpenCV = "opencv"
	BackendNative = "native"
)

// Codec is an image file backend producing and consuming intensity grids.
type Codec interface {
	Name() string
	Load(path string) (*morph.Grid, error)
	Save(path string, g *morph.Grid) error
}

func NewCodec(backend string, memMgr *memory.Manager) (Codec, error) {
	switch backend {
	case BackendOpenCV:
		return codec.New(memMgr), nil
	case BackendNative:
		return imagefile.New(), nil
	default:
		return nil, fmt.Errorf("unknown image backend %q", backend)
	}
}

type imageLoader struct {
	codec  Codec
	logger logger.Logger
}

func (l *imageLoader) LoadFromPath(path string) (*ImageData, error) {
	grid, err := l.codec.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	imageData := &ImageData{
		Grid:   grid,
		Width:  grid.Width,
		Height: grid.Height,
		Format: determineFormat(path),
		Path:   path,
	}

	l.logger.Info("ImageLoader", "image loaded", map[string]interface{}{
		"width":   imageData.Width,
		"height":  imageData.Height,
		"format":  imageData.Format,
		"backend": l.codec.Name(),
	})

	return imageData, nil
}

func determineFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	case ".pgm":
		return "pgm"
	default:
		return "unknown"
	}
}

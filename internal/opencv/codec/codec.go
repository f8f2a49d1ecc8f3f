package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"erosion-engine/internal/morph"
	"erosion-engine/internal/opencv/bridge"
	"erosion-engine/internal/opencv/conversion"
	"erosion-engine/internal/opencv/memory"
	"erosion-engine/internal/opencv/safe"

	"gocv.io/x/gocv"
)

var writableExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".pgm":  true,
	".webp": true,
}

// Codec reads and writes image files through OpenCV's imgcodecs.
type Codec struct {
	memoryManager *memory.Manager
}

func New(memMgr *memory.Manager) *Codec {
	return &Codec{memoryManager: memMgr}
}

func (c *Codec) Name() string {
	return "opencv"
}

// Load decodes path and reduces it to a single intensity channel.
func (c *Codec) Load(path string) (*morph.Grid, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	decoded := gocv.IMRead(path, gocv.IMReadAnyColor)
	if decoded.Empty() {
		decoded.Close()
		return nil, fmt.Errorf("failed to decode image with OpenCV: %s", path)
	}

	mat, err := safe.Adopt(decoded, c.memoryManager, "loaded_image")
	if err != nil {
		return nil, fmt.Errorf("failed to create safe Mat: %w", err)
	}
	defer mat.Close()

	gray, err := conversion.ConvertToGrayscale(mat, c.memoryManager)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to grayscale: %w", err)
	}
	defer gray.Close()

	return bridge.MatToGrid(gray)
}

// Save encodes g to path; the format follows the file extension.
func (c *Codec) Save(path string, g *morph.Grid) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !writableExtensions[ext] {
		return fmt.Errorf("unsupported output format %q", ext)
	}

	if g == nil {
		return morph.ErrNilGrid
	}

	if err := c.memoryManager.Reserve(int64(len(g.Pix))); err != nil {
		return err
	}

	mat, err := bridge.GridToMat(g, c.memoryManager)
	if err != nil {
		return fmt.Errorf("failed to convert grid to Mat: %w", err)
	}
	defer mat.Close()

	if ok := gocv.IMWrite(path, mat.GetMat()); !ok {
		return fmt.Errorf("failed to encode image with OpenCV: %s", path)
	}

	return nil
}

// Package imagefile reads and writes grayscale grids with pure Go decoders:
// imaging for jpeg, png, gif, tiff and bmp, chai2010/webp for webp.
package imagefile

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"erosion-engine/internal/morph"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type Codec struct{}

func New() *Codec {
	return &Codec{}
}

func (c *Codec) Name() string {
	return "native"
}

func (c *Codec) Load(path string) (*morph.Grid, error) {
	img, err := c.decode(path)
	if err != nil {
		return nil, err
	}
	return ImageToGrid(img)
}

func (c *Codec) decode(path string) (image.Image, error) {
	if strings.ToLower(filepath.Ext(path)) == ".webp" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()

		img, err := webp.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode webp: %w", err)
		}
		return img, nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (c *Codec) Save(path string, g *morph.Grid) error {
	if g == nil {
		return morph.ErrNilGrid
	}

	img := GridToImage(g)

	if strings.ToLower(filepath.Ext(path)) == ".webp" {
		return saveWebP(path, img)
	}

	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

func saveWebP(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := webp.Encode(f, img, &webp.Options{Lossless: true}); err != nil {
		return fmt.Errorf("failed to encode webp: %w", err)
	}
	return nil
}

// ImageToGrid reduces any image to intensity with color.GrayModel, which
// uses the same luma weights as OpenCV's BGR2GRAY.
func ImageToGrid(img image.Image) (*morph.Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	g, err := morph.NewGrid(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	gray := &image.Gray{Pix: g.Pix, Stride: g.Width, Rect: image.Rect(0, 0, g.Width, g.Height)}
	draw.Draw(gray, gray.Rect, img, bounds.Min, draw.Src)

	return g, nil
}

// GridToImage wraps a copy of the grid's samples in an image.Gray.
func GridToImage(g *morph.Grid) *image.Gray {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &image.Gray{Pix: pix, Stride: g.Width, Rect: image.Rect(0, 0, g.Width, g.Height)}
}

package pipeline

import (
	"fmt"

	"erosion-engine/internal/logger"
)

type imageSaver struct {
	codec  Codec
	logger logger.Logger
}

func (s *imageSaver) SaveToPath(path string, imageData *ImageData) error {
	if imageData == nil || imageData.Grid == nil {
		return fmt.Errorf("no image data to save")
	}

	if err := s.codec.Save(path, imageData.Grid); err != nil {
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"path":   path,
			"format": determineFormat(path),
		})
		return fmt.Errorf("save %s: %w", path, err)
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path":   path,
		"format": determineFormat(path),
	})

	return nil
}

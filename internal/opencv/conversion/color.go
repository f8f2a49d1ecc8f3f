package conversion

import (
	"fmt"

	"erosion-engine/internal/opencv/safe"

	"gocv.io/x/gocv"
)

func CvtColorSafe(src *safe.Mat, dst *safe.Mat, code gocv.ColorConversionCode) error {
	if err := safe.ValidateColorConversion(src, code); err != nil {
		return fmt.Errorf("color conversion validation failed: %w", err)
	}

	if err := safe.ValidateMatForOperation(dst, "CvtColor destination"); err != nil {
		return fmt.Errorf("destination mat validation failed: %w", err)
	}

	srcMat := src.GetMat()
	dstMat := dst.GetMat()

	if err := gocv.CvtColor(srcMat, &dstMat, code); err != nil {
		return fmt.Errorf("cvtcolor: %w", err)
	}

	return nil
}

// ConvertToGrayscale reduces a 1, 3 or 4 channel 8-bit Mat to a new single
// channel intensity Mat. The source is left untouched.
func ConvertToGrayscale(src *safe.Mat, tracker safe.MemoryTracker) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "ConvertToGrayscale"); err != nil {
		return nil, err
	}

	var code gocv.ColorConversionCode
	switch channels := src.Channels(); channels {
	case 1:
		data, err := src.Bytes()
		if err != nil {
			return nil, err
		}
		return safe.NewMatFromBytes(src.Rows(), src.Cols(), data, tracker, "grayscale")
	case 3:
		code = gocv.ColorBGRToGray
	case 4:
		code = gocv.ColorBGRAToGray
	default:
		return nil, fmt.Errorf("unsupported channel count for grayscale conversion: %d", channels)
	}

	dst, err := safe.NewMatWithTracker(src.Rows(), src.Cols(), gocv.MatTypeCV8UC1, tracker, "grayscale")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	if err := CvtColorSafe(src, dst, code); err != nil {
		dst.Close()
		return nil, fmt.Errorf("color conversion failed: %w", err)
	}

	return dst, nil
}

package services

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"
)

const (
	// colorDifferenceThreshold is the per-channel difference (16-bit) above
	// which two sampled pixels count as different.
	colorDifferenceThreshold = 256
	sampleGrid               = 10
)

var (
	// ErrSolidColor is returned for photos that are a single flat color
	ErrSolidColor = errors.New("photo appears to be a solid color")
	// ErrUnsupportedFormat is returned for photos no registered decoder can read
	ErrUnsupportedFormat = errors.New("no decoder for photo format")
)

// CheckPhoto decodes the photo at path and rejects flat single-color images
func CheckPhoto(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if errors.Is(err, image.ErrFormat) {
		return ErrUnsupportedFormat
	}
	if err != nil {
		return fmt.Errorf("decode photo: %w", err)
	}
	return checkVariation(img)
}

func checkVariation(img image.Image) error {
	bounds := img.Bounds()
	stepX := max(bounds.Dx()/sampleGrid, 1)
	stepY := max(bounds.Dy()/sampleGrid, 1)

	r1, g1, b1, a1 := img.At(bounds.Min.X, bounds.Min.Y).RGBA()

	different, total := 0, 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			total++
			r2, g2, b2, a2 := img.At(x, y).RGBA()
			if channelDiff(r1, r2) || channelDiff(g1, g2) || channelDiff(b1, b2) || channelDiff(a1, a2) {
				different++
			}
		}
	}

	if total > 0 && float64(different)/float64(total) < 0.01 {
		return fmt.Errorf("%w (only %d/%d sampled pixels differ)", ErrSolidColor, different, total)
	}
	return nil
}

func channelDiff(a, b uint32) bool {
	if a > b {
		return a-b > colorDifferenceThreshold
	}
	return b-a > colorDifferenceThreshold
}

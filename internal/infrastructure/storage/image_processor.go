package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"

	"library-backend/internal/shared"
)

var ErrNotAnImage = fmt.Errorf("%w: cover content is not a png or jpeg image", shared.ErrValidation)

// ImageProcessor checks that an uploaded cover really decodes as an image.
type ImageProcessor struct {
	MaxSize int64
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	return &ImageProcessor{MaxSize: maxSize}
}

// Inspect reads at most MaxSize+1 bytes, validates them and returns the raw
// bytes ready for upload plus the decoded dimensions.
func (p *ImageProcessor) Inspect(r io.Reader) ([]byte, image.Point, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.MaxSize+1))
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("read cover: %w", err)
	}
	if int64(len(data)) > p.MaxSize {
		return nil, image.Point{}, ErrFileTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || (format != "png" && format != "jpeg") {
		return nil, image.Point{}, ErrNotAnImage
	}

	// A header alone is not enough, truncated files must fail here and not in a browser.
	if _, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true)); err != nil {
		return nil, image.Point{}, ErrNotAnImage
	}

	return data, image.Pt(cfg.Width, cfg.Height), nil
}

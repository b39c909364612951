package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	// registers the webp decoder with image.Decode
	_ "golang.org/x/image/webp"
)

const (
	maxWidth    = 800
	maxHeight   = 600
	jpegQuality = 80

	ContentType = "image/jpeg"
)

type ImageProcessor struct {
}

func New() *ImageProcessor {
	return &ImageProcessor{}
}

// Compress shrinks the image to fit within 800x600 and re-encodes it as
// JPEG at quality 80. Images already inside the bound keep their size.
func (p *ImageProcessor) Compress(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ImageProcessor - Compress: %w", err)
	}

	img, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Compress - decodeImage: %w", err)
	}

	res, err := encodeJPEG(fit(img))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Compress - encodeJPEG: %w", err)
	}

	return res, nil
}

// Dimensions re-encodes data the same way Compress does and reports the
// width and height of the result.
func (p *ImageProcessor) Dimensions(ctx context.Context, data []byte) (int, int, error) {
	compressed, err := p.Compress(ctx, data)
	if err != nil {
		return 0, 0, fmt.Errorf("ImageProcessor - Dimensions - p.Compress: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(compressed))
	if err != nil {
		return 0, 0, fmt.Errorf("ImageProcessor - Dimensions - image.DecodeConfig: %w", err)
	}

	return cfg.Width, cfg.Height, nil
}

func fit(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return img
	}

	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}

func decodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - decodeImage - imaging.Decode: %w", err)
	}

	return img, nil
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer

	err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - encodeJPEG - imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}

package utils

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP decoder
)

// ResizePortrait crops and scales an image to exactly width x height around its centre.
// PNG input stays PNG, every other format is re-encoded as JPEG since there is no pure Go WebP encoder.
func ResizePortrait(data []byte, width, height int) ([]byte, string, error) {
	if width <= 0 || height <= 0 {
		return nil, "", fmt.Errorf("invalid target size %dx%d", width, height)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	resized := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	format, ext := imaging.JPEG, "jpg"
	if SniffContentType(data) == "image/png" {
		format, ext = imaging.PNG, "png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(90)); err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), ext, nil
}

// PlaceholderJPEG renders a flat light-grey square used when a candidate has no photo.
func PlaceholderJPEG(size int) ([]byte, error) {
	if size <= 0 {
		size = 400
	}
	img := imaging.New(size, size, color.NRGBA{R: 0xE5, G: 0xE5, B: 0xE5, A: 0xFF})

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

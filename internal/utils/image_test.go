package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestResizePortraitFillsTargetSize(t *testing.T) {
	out, ext, err := ResizePortrait(pngFixture(t, 300, 200), 80, 100)
	require.NoError(t, err)
	assert.Equal(t, "png", ext)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestResizePortraitRejectsGarbage(t *testing.T) {
	_, _, err := ResizePortrait([]byte("not an image"), 80, 100)
	assert.Error(t, err)
}

func TestPlaceholderJPEG(t *testing.T) {
	out, err := PlaceholderJPEG(0)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", SniffContentType(out))

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

func TestExtensionFromMime(t *testing.T) {
	assert.Equal(t, "jpg", ExtensionFromMime("image/jpeg"))
	assert.Equal(t, "jpg", ExtensionFromMime("image/jpg"))
	assert.Equal(t, "webp", ExtensionFromMime("image/webp; charset=binary"))
	assert.Equal(t, "", ExtensionFromMime("text/plain"))
}

func TestNormalizeExtension(t *testing.T) {
	assert.Equal(t, "jpeg", NormalizeExtension("Portrait.JPEG"))
	assert.Equal(t, "webp", NormalizeExtension(".webp"))
	assert.Equal(t, "", NormalizeExtension("noext."))
}

func TestSniffContentType(t *testing.T) {
	assert.Equal(t, "image/png", SniffContentType(pngFixture(t, 2, 2)))
	webp := append([]byte("RIFF\x00\x00\x00\x00WEBPVP8 "), make([]byte, 32)...)
	assert.Equal(t, "image/webp", SniffContentType(webp))
	assert.Equal(t, "text/plain", SniffContentType([]byte("hello")))
}

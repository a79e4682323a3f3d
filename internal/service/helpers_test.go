package service

import (
	"bytes"
	"campaign/internal/model"
	"campaign/internal/storage"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) model.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	repo, err := model.NewRepositoryFactory().Open(sqlite.Open(dsn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newTestPhotoStore(t *testing.T) (*PhotoStore, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return NewPhotoStore(local, storage.NewURLBuilder("/uploads"), PhotoOptions{}), dir
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 120, G: 40, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngUpload(t *testing.T) *Upload {
	data := pngBytes(t)
	return &Upload{Filename: "portrait.png", ContentType: "image/png", Size: int64(len(data)), Data: data}
}

// webpUpload returns a payload that carries a WebP signature followed by padding.
func webpUpload(size int) *Upload {
	data := make([]byte, size)
	copy(data, "RIFF\x00\x00\x00\x00WEBPVP8 ")
	return &Upload{Filename: "portrait.webp", ContentType: "image/webp", Size: int64(size), Data: data}
}

type countingObserver struct {
	logins   map[string]int
	cleanups int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{logins: map[string]int{}}
}

func (o *countingObserver) ObserveLogin(result string) { o.logins[result]++ }

func (o *countingObserver) ObserveCleanupFailure() { o.cleanups++ }

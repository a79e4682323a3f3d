package storage

import (
	"campaign/internal/config"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	key, err := store.Save(context.Background(), []byte("portrait"), SaveOptions{BaseName: "candidate-abc", Extension: ".JPG"})
	require.NoError(t, err)
	assert.Equal(t, "candidate-abc.jpg", key)

	content, err := os.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	assert.Equal(t, "portrait", string(content))

	require.NoError(t, store.Delete(context.Background(), key))
	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))

	err = store.Delete(context.Background(), key)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestLocalStorageSkipIfExists(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	opts := SaveOptions{BaseName: "default-candidate", Extension: "jpg", SkipIfExists: true}
	_, err = store.Save(context.Background(), []byte("first"), opts)
	require.NoError(t, err)
	_, err = store.Save(context.Background(), []byte("second"), opts)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "default-candidate.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestLocalStorageRejectsEmptyPayload(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	_, err = store.Save(context.Background(), nil, SaveOptions{BaseName: "x", Extension: "jpg"})
	assert.Error(t, err)
}

func TestLocalStorageDeleteRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, store.Delete(context.Background(), "../outside.jpg"))
	assert.Error(t, store.Delete(context.Background(), "  "))
}

func TestBuildObjectPath(t *testing.T) {
	key, err := buildObjectPath("Candidates", "candidate 1", "WEBP")
	require.NoError(t, err)
	assert.Equal(t, "candidates/candidate-1.webp", key)

	_, err = buildObjectPath("", "  ", "jpg")
	assert.Error(t, err)
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/png", detectContentType(SaveOptions{Extension: "png"}))
	assert.Equal(t, "image/webp", detectContentType(SaveOptions{Extension: "jpg", ContentType: "image/webp"}))
}

func TestURLBuilderRoundTrip(t *testing.T) {
	b := NewURLBuilder("uploads/")
	assert.Equal(t, "/uploads", b.Base())
	assert.False(t, b.IsRemote())

	url := b.URL("candidate-1.jpg")
	assert.Equal(t, "/uploads/candidate-1.jpg", url)

	key, ok := b.Key(url)
	assert.True(t, ok)
	assert.Equal(t, "candidate-1.jpg", key)

	_, ok = b.Key("https://res.cloudinary.com/demo/image/upload/x.jpg")
	assert.False(t, ok)
	_, ok = b.Key("/uploads/../secret")
	assert.False(t, ok)
}

func TestURLBuilderRemote(t *testing.T) {
	b := NewURLBuilder("https://cdn.example.com/photos/")
	assert.True(t, b.IsRemote())
	assert.Equal(t, "https://cdn.example.com/photos/a/b.png", b.URL("a/b.png"))

	key, ok := b.Key("https://cdn.example.com/photos/a/b.png")
	assert.True(t, ok)
	assert.Equal(t, "a/b.png", key)
}

type fakeObjects struct {
	objects    map[string][]byte
	types      map[string]string
	existsErr  error
	bucketMade bool
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjects) put(_ context.Context, key string, data []byte, contentType string) error {
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeObjects) exists(_ context.Context, key string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeObjects) remove(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeObjects) ensureBucket(context.Context) error {
	f.bucketMade = true
	return nil
}

func TestBucketStoragePrefixAndContentType(t *testing.T) {
	objects := newFakeObjects()
	store := newBucketStorage("fake", objects, "/site/photos/")

	key, err := store.Save(context.Background(), []byte("png"), SaveOptions{BaseName: "candidate-1", Extension: "png"})
	require.NoError(t, err)
	assert.Equal(t, "site/photos/candidate-1.png", key)
	assert.Equal(t, "image/png", objects.types[key])

	require.NoError(t, store.Delete(context.Background(), key))
	assert.Empty(t, objects.objects)

	err = store.Delete(context.Background(), key)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestBucketStorageSkipIfExists(t *testing.T) {
	objects := newFakeObjects()
	store := newBucketStorage("fake", objects, "")
	opts := SaveOptions{BaseName: "default-candidate", Extension: "jpg", SkipIfExists: true}

	_, err := store.Save(context.Background(), []byte("first"), opts)
	require.NoError(t, err)
	_, err = store.Save(context.Background(), []byte("second"), opts)
	require.NoError(t, err)
	assert.Equal(t, "first", string(objects.objects["default-candidate.jpg"]))
}

func TestBucketStorageCheckFailureIsNotMissing(t *testing.T) {
	objects := newFakeObjects()
	objects.existsErr = errors.New("access denied")
	store := newBucketStorage("fake", objects, "")

	err := store.Delete(context.Background(), "candidate-1.jpg")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrObjectNotFound))
}

func TestBucketStorageEnsureBucket(t *testing.T) {
	objects := newFakeObjects()
	store := newBucketStorage("fake", objects, "")
	require.NoError(t, store.EnsureBucket(context.Background()))
	assert.True(t, objects.bucketMade)

	local, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, local.EnsureBucket(context.Background()))
}

func TestBucketStorageCancelledContext(t *testing.T) {
	store := newBucketStorage("fake", newFakeObjects(), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.Save(ctx, []byte("x"), SaveOptions{BaseName: "a", Extension: "jpg"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestR2OptionsFromAccountID(t *testing.T) {
	opts, err := r2Options(config.Config{StorageR2AccountID: "abc123", StorageR2Bucket: "photos"})
	require.NoError(t, err)
	assert.Equal(t, "https://abc123.r2.cloudflarestorage.com", opts.Endpoint)
	assert.Equal(t, "auto", opts.Region)
	assert.True(t, opts.ForcePathStyle)

	_, err = r2Options(config.Config{StorageR2Bucket: "photos"})
	assert.Error(t, err)
}

func TestNewStorageValidatesBackendSettings(t *testing.T) {
	_, err := NewStorage(config.Config{StorageType: "ftp"})
	assert.Error(t, err)

	_, err = NewStorage(config.Config{StorageType: TypeS3, StorageS3Bucket: "photos"})
	assert.EqualError(t, err, "storage: s3 region is required")

	_, err = NewStorage(config.Config{StorageType: TypeMinIO, StorageMinIOEndpoint: "minio:9000"})
	assert.EqualError(t, err, "storage: minio access key is required")

	local, err := NewStorage(config.Config{StorageType: "LOCAL", StorageLocalDir: t.TempDir()})
	require.NoError(t, err)
	_, ok := local.(LocalBaseDirProvider)
	assert.True(t, ok)
}

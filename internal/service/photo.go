package service

import (
	"campaign/internal/storage"
	"campaign/internal/utils"
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const defaultPhotoMaxBytes = 5 << 20

var (
	allowedPhotoExtensions = map[string]bool{"jpeg": true, "jpg": true, "png": true, "webp": true}
	allowedPhotoTypes      = map[string]bool{"image/jpeg": true, "image/jpg": true, "image/png": true, "image/webp": true}
	sniffedPhotoTypes      = map[string]bool{"image/jpeg": true, "image/png": true, "image/webp": true}
)

// Upload is a single file taken from a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// PhotoOptions configures PhotoStore.
type PhotoOptions struct {
	MaxBytes       int64
	PlaceholderURL string
	Resize         bool
	Width          int
	Height         int
}

// PhotoCleanup is the outcome of removing a replaced or orphaned photo.
// Failures are reported here instead of being returned as errors: callers log them and move on.
type PhotoCleanup struct {
	URL     string
	Skipped bool
	Err     error
}

// Failed reports whether a deletion was attempted and failed.
func (c PhotoCleanup) Failed() bool {
	return c.Err != nil
}

// IsMissing reports whether a cleanup failed only because the file was already gone.
func (c PhotoCleanup) IsMissing() bool {
	return errors.Is(c.Err, storage.ErrObjectNotFound)
}

// PhotoStore validates, stores and removes candidate portraits.
type PhotoStore struct {
	storage storage.Storage
	urls    storage.URLBuilder
	opts    PhotoOptions
}

// NewPhotoStore creates a PhotoStore on top of the configured storage backend.
func NewPhotoStore(store storage.Storage, urls storage.URLBuilder, opts PhotoOptions) *PhotoStore {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultPhotoMaxBytes
	}
	if strings.TrimSpace(opts.PlaceholderURL) == "" {
		opts.PlaceholderURL = urls.URL("default-candidate.jpg")
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 1000
	}
	return &PhotoStore{storage: store, urls: urls, opts: opts}
}

// PlaceholderURL is stored for candidates without an uploaded photo.
func (p *PhotoStore) PlaceholderURL() string {
	return p.opts.PlaceholderURL
}

// MaxBytes is the upload size limit.
func (p *PhotoStore) MaxBytes() int64 {
	return p.opts.MaxBytes
}

// Validate checks size, extension, declared type and actual content of an upload.
func (p *PhotoStore) Validate(upload *Upload) error {
	if upload == nil {
		return &FileError{Reason: "No file uploaded"}
	}
	size := upload.Size
	if int64(len(upload.Data)) > size {
		size = int64(len(upload.Data))
	}
	if size > p.opts.MaxBytes {
		return &FileError{Reason: fmt.Sprintf("File too large. Maximum size is %dMB", p.opts.MaxBytes>>20)}
	}
	if size == 0 {
		return &FileError{Reason: "Uploaded file is empty"}
	}

	ext := utils.NormalizeExtension(filepath.Ext(upload.Filename))
	declared, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil {
		declared = ""
	}
	if !allowedPhotoExtensions[ext] || !allowedPhotoTypes[strings.ToLower(declared)] {
		return &FileError{Reason: "Only image files (jpeg, jpg, png, webp) are allowed"}
	}
	if !sniffedPhotoTypes[utils.SniffContentType(upload.Data)] {
		return &FileError{Reason: "File content is not a valid image"}
	}
	return nil
}

// Store writes a validated upload under a collision-resistant name and returns its public URL.
func (p *PhotoStore) Store(ctx context.Context, upload *Upload) (string, error) {
	if err := p.Validate(upload); err != nil {
		return "", err
	}

	data := upload.Data
	contentType := utils.SniffContentType(data)
	ext := utils.ExtensionFromMime(contentType)
	if ext == "" {
		ext = utils.NormalizeExtension(filepath.Ext(upload.Filename))
	}
	if p.opts.Resize {
		resized, resizedExt, err := utils.ResizePortrait(data, p.opts.Width, p.opts.Height)
		if err != nil {
			return "", &FileError{Reason: "File content is not a valid image"}
		}
		data, ext = resized, resizedExt
		contentType = utils.SniffContentType(resized)
	}

	key, err := p.storage.Save(ctx, data, storage.SaveOptions{
		BaseName:    "candidate-" + utils.GenerateUUID(),
		Extension:   ext,
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}
	return p.urls.URL(key), nil
}

// Discard removes the file behind url unless it is the placeholder or not ours.
func (p *PhotoStore) Discard(ctx context.Context, url string) PhotoCleanup {
	result := PhotoCleanup{URL: url}
	if strings.TrimSpace(url) == "" || url == p.opts.PlaceholderURL {
		result.Skipped = true
		return result
	}
	key, ok := p.urls.Key(url)
	if !ok {
		result.Skipped = true
		return result
	}
	if err := p.storage.Delete(ctx, key); err != nil {
		result.Err = err
	}
	return result
}

// EnsurePlaceholder writes the default portrait when the placeholder URL points into our storage
// and the file does not exist yet.
func (p *PhotoStore) EnsurePlaceholder(ctx context.Context) error {
	key, ok := p.urls.Key(p.opts.PlaceholderURL)
	if !ok {
		return nil
	}
	data, err := utils.PlaceholderJPEG(400)
	if err != nil {
		return err
	}

	dir, file := path.Split(key)
	ext := path.Ext(file)
	stored, err := p.storage.Save(ctx, data, storage.SaveOptions{
		Category:     strings.Trim(dir, "/"),
		BaseName:     strings.TrimSuffix(file, ext),
		Extension:    ext,
		ContentType:  "image/jpeg",
		SkipIfExists: true,
	})
	if err != nil {
		return fmt.Errorf("write placeholder: %w", err)
	}
	if stored != key {
		logrus.WithFields(logrus.Fields{"expected": key, "stored": stored}).Warn("placeholder stored under a different key")
	}
	return nil
}

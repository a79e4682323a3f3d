package service

import (
	"campaign/internal/entity"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCandidate() *entity.Candidate {
	c, _ := CandidateInput{}.DecodeCandidate(validCandidateFields())
	return c
}

func fileFor(dir, url string) string {
	return filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
}

func TestCandidateCreateWithoutPhotoUsesPlaceholder(t *testing.T) {
	repo := newTestRepo(t)
	photos, _ := newTestPhotoStore(t)
	svc := NewCandidateService(repo, photos, nil, nil)

	created, err := svc.Create(context.Background(), newTestCandidate(), nil)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/default-candidate.jpg", created.PhotoURL)
	assert.NotZero(t, created.ID)
}

func TestCandidateCreateRejectsBadPhotoBeforeInsert(t *testing.T) {
	repo := newTestRepo(t)
	photos, _ := newTestPhotoStore(t)
	svc := NewCandidateService(repo, photos, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, newTestCandidate(), webpUpload(6<<20))
	var ferr *FileError
	require.True(t, errors.As(err, &ferr))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestCandidateUpdateReplacesPhoto(t *testing.T) {
	repo := newTestRepo(t)
	photos, dir := newTestPhotoStore(t)
	svc := NewCandidateService(repo, photos, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, newTestCandidate(), pngUpload(t))
	require.NoError(t, err)
	oldFile := fileFor(dir, created.PhotoURL)
	_, err = os.Stat(oldFile)
	require.NoError(t, err)

	updated, cleanup, err := svc.Update(ctx, created.ID, entity.CandidateUpdates{}, webpUpload(1024))
	require.NoError(t, err)
	assert.NotEqual(t, created.PhotoURL, updated.PhotoURL)
	assert.True(t, strings.HasSuffix(updated.PhotoURL, ".webp"))
	assert.False(t, cleanup.Failed())
	assert.Equal(t, created.PhotoURL, cleanup.URL)

	_, err = os.Stat(oldFile)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fileFor(dir, updated.PhotoURL))
	assert.NoError(t, err)
}

func TestCandidateUpdateWithoutFieldsOrPhoto(t *testing.T) {
	repo := newTestRepo(t)
	photos, _ := newTestPhotoStore(t)
	svc := NewCandidateService(repo, photos, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, newTestCandidate(), nil)
	require.NoError(t, err)

	_, _, err = svc.Update(ctx, created.ID, entity.CandidateUpdates{}, nil)
	assert.True(t, errors.Is(err, ErrNoFieldsToUpdate))

	_, _, err = svc.Update(ctx, created.ID+1, entity.CandidateUpdates{}, nil)
	assert.True(t, IsNotFound(err))
}

func TestCandidateDeleteReportsMissingPhoto(t *testing.T) {
	repo := newTestRepo(t)
	photos, dir := newTestPhotoStore(t)
	observer := newCountingObserver()
	svc := NewCandidateService(repo, photos, nil, observer)
	ctx := context.Background()

	created, err := svc.Create(ctx, newTestCandidate(), pngUpload(t))
	require.NoError(t, err)
	require.NoError(t, os.Remove(fileFor(dir, created.PhotoURL)))

	cleanup, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, cleanup.IsMissing())
	assert.Zero(t, observer.cleanups)

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestCandidateDeleteKeepsPlaceholder(t *testing.T) {
	repo := newTestRepo(t)
	photos, dir := newTestPhotoStore(t)
	svc := NewCandidateService(repo, photos, nil, nil)
	ctx := context.Background()
	require.NoError(t, photos.EnsurePlaceholder(ctx))

	created, err := svc.Create(ctx, newTestCandidate(), nil)
	require.NoError(t, err)
	cleanup, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, cleanup.Skipped)

	_, err = os.Stat(filepath.Join(dir, "default-candidate.jpg"))
	assert.NoError(t, err)
}

func TestCandidateStats(t *testing.T) {
	repo := newTestRepo(t)
	photos, _ := newTestPhotoStore(t)
	svc := NewCandidateService(repo, photos, nil, nil)
	ctx := context.Background()

	for _, active := range []bool{true, true, false} {
		c := newTestCandidate()
		c.IsActive = active
		_, err := svc.Create(ctx, c, nil)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.CandidateStats{Total: 3, Active: 2, Inactive: 1}, stats)

	public, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, public, 2)
}

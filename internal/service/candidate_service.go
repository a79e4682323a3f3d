package service

import (
	"campaign/internal/cache"
	"campaign/internal/entity"
	"campaign/internal/model"
	"context"

	"github.com/sirupsen/logrus"
)

// CleanupObserver is notified when a photo could not be removed from storage.
type CleanupObserver interface {
	ObserveCleanupFailure()
}

// CandidateService combines candidate rows with their stored portraits.
type CandidateService struct {
	rows     *Collection[entity.Candidate, entity.CandidateUpdates]
	photos   *PhotoStore
	observer CleanupObserver
}

// NewCandidateService creates the candidate service.
func NewCandidateService(repo model.Repository, photos *PhotoStore, c cache.Cache, observer CleanupObserver) *CandidateService {
	return &CandidateService{
		rows:     NewCollection[entity.Candidate, entity.CandidateUpdates]("Candidate", "candidates", repo.Candidates(), c),
		photos:   photos,
		observer: observer,
	}
}

// Photos exposes the photo store used for uploads.
func (s *CandidateService) Photos() *PhotoStore {
	return s.photos
}

// List returns candidates newest first.
func (s *CandidateService) List(ctx context.Context, activeOnly bool) ([]entity.Candidate, error) {
	return s.rows.List(ctx, activeOnly)
}

// Get returns a candidate by id.
func (s *CandidateService) Get(ctx context.Context, id uint) (*entity.Candidate, error) {
	return s.rows.Get(ctx, id)
}

// Create stores the optional photo and inserts the candidate. Without a photo the
// placeholder URL is recorded. A photo written for a failed insert is removed again.
func (s *CandidateService) Create(ctx context.Context, candidate *entity.Candidate, photo *Upload) (*entity.Candidate, error) {
	if photo != nil {
		if err := s.photos.Validate(photo); err != nil {
			return nil, err
		}
	}

	candidate.PhotoURL = s.photos.PlaceholderURL()
	if photo != nil {
		url, err := s.photos.Store(ctx, photo)
		if err != nil {
			return nil, err
		}
		candidate.PhotoURL = url
	}

	created, err := s.rows.Create(ctx, candidate)
	if err != nil {
		if photo != nil {
			s.report(s.photos.Discard(ctx, candidate.PhotoURL), 0)
		}
		return nil, err
	}
	return created, nil
}

// Update applies a sparse patch and optionally replaces the photo. The returned
// cleanup describes removal of the replaced file and never fails the update.
func (s *CandidateService) Update(ctx context.Context, id uint, patch entity.CandidateUpdates, photo *Upload) (*entity.Candidate, PhotoCleanup, error) {
	var cleanup PhotoCleanup
	if photo != nil {
		if err := s.photos.Validate(photo); err != nil {
			return nil, cleanup, err
		}
	}

	existing, err := s.rows.Get(ctx, id)
	if err != nil {
		return nil, cleanup, err
	}
	if patch.IsEmpty() && photo == nil {
		return nil, cleanup, ErrNoFieldsToUpdate
	}

	if photo != nil {
		url, err := s.photos.Store(ctx, photo)
		if err != nil {
			return nil, cleanup, err
		}
		patch.PhotoURL = &url
	}

	updated, err := s.rows.Update(ctx, id, patch)
	if err != nil {
		if patch.PhotoURL != nil {
			s.report(s.photos.Discard(ctx, *patch.PhotoURL), id)
		}
		return nil, cleanup, err
	}

	if patch.PhotoURL != nil && *patch.PhotoURL != existing.PhotoURL {
		cleanup = s.photos.Discard(ctx, existing.PhotoURL)
		s.report(cleanup, id)
	}
	return updated, cleanup, nil
}

// Delete removes the candidate photo and then the row. The row is removed even when
// the photo cannot be deleted.
func (s *CandidateService) Delete(ctx context.Context, id uint) (PhotoCleanup, error) {
	existing, err := s.rows.Get(ctx, id)
	if err != nil {
		return PhotoCleanup{}, err
	}
	cleanup := s.photos.Discard(ctx, existing.PhotoURL)
	s.report(cleanup, id)
	if err := s.rows.Delete(ctx, id); err != nil {
		return cleanup, err
	}
	return cleanup, nil
}

// Stats counts all, active and inactive candidates.
func (s *CandidateService) Stats(ctx context.Context) (entity.CandidateStats, error) {
	total, err := s.rows.Count(ctx, false)
	if err != nil {
		return entity.CandidateStats{}, err
	}
	active, err := s.rows.Count(ctx, true)
	if err != nil {
		return entity.CandidateStats{}, err
	}
	return entity.CandidateStats{Total: total, Active: active, Inactive: total - active}, nil
}

func (s *CandidateService) report(cleanup PhotoCleanup, id uint) {
	if !cleanup.Failed() {
		return
	}
	entry := logrus.WithError(cleanup.Err).WithFields(logrus.Fields{"candidate_id": id, "photo_url": cleanup.URL})
	if cleanup.IsMissing() {
		entry.Warn("photo already removed from storage")
		return
	}
	entry.Error("failed to remove photo from storage")
	if s.observer != nil {
		s.observer.ObserveCleanupFailure()
	}
}

package service

import (
	"campaign/internal/cache"
	"campaign/internal/model"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Patch is a typed sparse update: only supplied fields appear in ToMap.
type Patch interface {
	ToMap() map[string]interface{}
	IsEmpty() bool
}

// Collection implements list/get/create/update/delete for one resource table.
type Collection[T any, U Patch] struct {
	resource string
	cacheKey string
	table    model.Table[T]
	cache    cache.Cache
}

// NewCollection wires a table to the shared CRUD flow. resource is used in error
// messages ("Policy not found"), cacheKey namespaces the cached public list.
func NewCollection[T any, U Patch](resource, cacheKey string, table model.Table[T], c cache.Cache) *Collection[T, U] {
	if c == nil {
		c = cache.Noop{}
	}
	return &Collection[T, U]{resource: resource, cacheKey: cacheKey, table: table, cache: c}
}

// Resource returns the display name of the resource.
func (s *Collection[T, U]) Resource() string {
	return s.resource
}

func (s *Collection[T, U]) publicKey() string {
	return s.cacheKey + ":public"
}

// List returns active rows for the public site, or every row for admins.
func (s *Collection[T, U]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	if activeOnly {
		var cached []T
		found, err := s.cache.Get(ctx, s.publicKey(), &cached)
		if err != nil {
			logrus.WithError(err).WithField("key", s.publicKey()).Warn("cache read failed")
		} else if found {
			return cached, nil
		}
	}

	rows, err := s.table.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.cacheKey, err)
	}

	if activeOnly {
		if err := s.cache.Set(ctx, s.publicKey(), rows); err != nil {
			logrus.WithError(err).WithField("key", s.publicKey()).Warn("cache write failed")
		}
	}
	return rows, nil
}

// Get returns the row with id regardless of its activity flag.
func (s *Collection[T, U]) Get(ctx context.Context, id uint) (*T, error) {
	row, err := s.table.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: s.resource, ID: id}
		}
		return nil, fmt.Errorf("get %s %d: %w", s.cacheKey, id, err)
	}
	return row, nil
}

// Create inserts a validated row and returns it with generated columns filled in.
func (s *Collection[T, U]) Create(ctx context.Context, row *T) (*T, error) {
	if err := s.table.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.cacheKey, err)
	}
	s.invalidate(ctx)
	return row, nil
}

// Update applies a sparse patch and returns the full updated row.
func (s *Collection[T, U]) Update(ctx context.Context, id uint, patch U) (*T, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.table.Update(ctx, id, patch.ToMap()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: s.resource, ID: id}
		}
		return nil, fmt.Errorf("update %s %d: %w", s.cacheKey, id, err)
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// Delete removes the row permanently.
func (s *Collection[T, U]) Delete(ctx context.Context, id uint) error {
	if err := s.table.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: s.resource, ID: id}
		}
		return fmt.Errorf("delete %s %d: %w", s.cacheKey, id, err)
	}
	s.invalidate(ctx)
	return nil
}

// Count returns the number of rows, optionally only active ones.
func (s *Collection[T, U]) Count(ctx context.Context, activeOnly bool) (int64, error) {
	n, err := s.table.Count(ctx, activeOnly)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.cacheKey, err)
	}
	return n, nil
}

func (s *Collection[T, U]) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, s.publicKey()); err != nil {
		logrus.WithError(err).WithField("key", s.publicKey()).Warn("cache invalidation failed")
	}
}

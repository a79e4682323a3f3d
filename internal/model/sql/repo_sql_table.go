package sql

import (
	"campaign/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Table is the generic CRUD surface of a single content table.
type Table[T any] interface {
	// List returns rows in the table's order; activeOnly keeps is_active rows only.
	List(ctx context.Context, activeOnly bool) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	// Create inserts the row, assigning display_order = max+1 where the row has one.
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

// gormTable is the shared CRUD implementation behind every content table.
type gormTable[T any] struct {
	db    *gorm.DB
	order []string
}

func newGormTable[T any](db *gorm.DB, order ...string) *gormTable[T] {
	return &gormTable[T]{db: db, order: order}
}

// List returns rows in the table's fixed order.
func (t *gormTable[T]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	if t == nil || t.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	query := t.db.WithContext(ctx).Model(new(T))
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	for _, clause := range t.order {
		query = query.Order(clause)
	}

	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// Get loads a row by id regardless of its activity flag.
func (t *gormTable[T]) Get(ctx context.Context, id uint) (*T, error) {
	if t == nil || t.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var row T
	if err := t.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts the row. Display-ordered rows are appended after the current maximum.
func (t *gormTable[T]) Create(ctx context.Context, row *T) error {
	if t == nil || t.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if row == nil {
		return fmt.Errorf("row is nil")
	}

	ordered, ok := any(row).(entity.DisplayOrdered)
	if !ok {
		return t.db.WithContext(ctx).Create(row).Error
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		if err := tx.Model(new(T)).Select("COALESCE(MAX(display_order), 0)").Row().Scan(&maxOrder); err != nil {
			return fmt.Errorf("read max display order: %w", err)
		}
		ordered.SetDisplayOrder(maxOrder + 1)
		return tx.Create(row).Error
	})
}

// Update applies the column map in a single UPDATE statement.
func (t *gormTable[T]) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	if t == nil || t.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}
	if len(updates) == 0 {
		return nil
	}

	result := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL reports unchanged rows as unaffected
		var n int64
		if err := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// Delete removes a row permanently.
func (t *gormTable[T]) Delete(ctx context.Context, id uint) error {
	if t == nil || t.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}

	result := t.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of rows, optionally only active ones.
func (t *gormTable[T]) Count(ctx context.Context, activeOnly bool) (int64, error) {
	if t == nil || t.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	query := t.db.WithContext(ctx).Model(new(T))
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

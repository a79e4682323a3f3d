package sql

import (
	"campaign/internal/entity"
	"context"
	"fmt"
	"strings"
)

// CreateAdminUser persists a new admin account.
func (r *GormRepository) CreateAdminUser(ctx context.Context, user *entity.AdminUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// GetActiveAdminByUsername loads an active admin by exact username.
func (r *GormRepository) GetActiveAdminByUsername(ctx context.Context, username string) (*entity.AdminUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return nil, fmt.Errorf("username is empty")
	}

	var user entity.AdminUser
	if err := r.db.WithContext(ctx).Where("username = ? AND is_active = ?", trimmed, true).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AdminUsernameExists reports whether an admin with username exists, active or not.
func (r *GormRepository) AdminUsernameExists(ctx context.Context, username string) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.AdminUser{}).Where("username = ?", strings.TrimSpace(username)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateAdminUser updates an existing admin entry.
func (r *GormRepository) UpdateAdminUser(ctx context.Context, id uint, updates entity.AdminUserUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user")
	}
	if updates.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.AdminUser{}).Where("id = ?", id).Updates(updates.ToMap()).Error
}

// CountAdminUsers returns the number of admin accounts.
func (r *GormRepository) CountAdminUsers(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.AdminUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

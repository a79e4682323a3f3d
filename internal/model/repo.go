package model

import (
	"campaign/internal/entity"
	"campaign/internal/model/sql"
	"context"
)

// Table 定义单张内容表的通用 CRUD 操作
type Table[T any] = sql.Table[T]

// Repository 定义数据库操作接口
type Repository interface {
	// 管理员账号
	CreateAdminUser(ctx context.Context, user *entity.AdminUser) error
	GetActiveAdminByUsername(ctx context.Context, username string) (*entity.AdminUser, error)
	AdminUsernameExists(ctx context.Context, username string) (bool, error)
	UpdateAdminUser(ctx context.Context, id uint, updates entity.AdminUserUpdates) error
	CountAdminUsers(ctx context.Context) (int64, error)

	// 内容表
	Candidates() Table[entity.Candidate]
	Policies() Table[entity.Policy]
	BasicTopics() Table[entity.BasicTopic]
	FAQs() Table[entity.FAQ]
	Events() Table[entity.Event]

	Close() error
}

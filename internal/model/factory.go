package model

import (
	"campaign/internal/config"
	"campaign/internal/entity"
	"campaign/internal/model/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	DBTypeMySQL    = "mysql"
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"
)

// PoolOptions 连接池参数
type PoolOptions struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// RepositoryFactory 打开数据库、迁移表结构并返回 Repository
type RepositoryFactory struct {
	Pool          PoolOptions
	SlowThreshold time.Duration
}

// NewRepositoryFactory 使用默认连接池参数
func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{
		Pool:          PoolOptions{MaxIdleConns: 10, MaxOpenConns: 50, ConnMaxLifetime: time.Hour},
		SlowThreshold: 2 * time.Second,
	}
}

// InitRepository 按配置连接数据库，进程内只调用一次，由 main 负责 Close
func InitRepository(cfg *config.Config) (Repository, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	repo, err := NewRepositoryFactory().Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dialector.Name(), err)
	}
	return repo, nil
}

// Dialector 根据 DBType 选择 GORM 方言；DSN_URL（或 DATABASE_URL）优先于分项配置
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.DBType)) {
	case DBTypeMySQL:
		return mysql.Open(mysqlDSN(cfg)), nil
	case DBTypePostgres, "postgresql":
		return postgres.Open(postgresDSN(cfg)), nil
	case DBTypeSQLite, "":
		file := strings.TrimSpace(cfg.DBPath)
		if file == "" {
			file = "datas/campaign.db"
		}
		// SQLite 会自动创建库文件，但目录必须存在
		if dir := filepath.Dir(file); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir %q: %w", dir, err)
			}
		}
		return sqlite.Open(file), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}
}

func mysqlDSN(cfg *config.Config) string {
	if cfg.DSNURL != "" {
		return cfg.DSNURL
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DBUser, cfg.DBPassword, cfg.DBAddr, portOr(cfg.DBPort, "3306"), cfg.DBName)
}

func postgresDSN(cfg *config.Config) string {
	if cfg.DSNURL != "" {
		return cfg.DSNURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBAddr, cfg.DBUser, cfg.DBPassword, cfg.DBName, portOr(cfg.DBPort, "5432"))
}

func portOr(port, fallback string) string {
	if strings.TrimSpace(port) == "" {
		return fallback
	}
	return port
}

// Open 打开给定方言的数据库并自动迁移
func (f *RepositoryFactory) Open(dialector gorm.Dialector) (Repository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(gormLogWriter{}, logger.Config{
			SlowThreshold:             f.SlowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		DisableForeignKeyConstraintWhenMigrating: true,
		NamingStrategy:                           schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(f.Pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(f.Pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(f.Pool.ConnMaxLifetime)
	if dialector.Name() == DBTypeSQLite {
		// 单写库，单连接避免 database is locked
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&entity.AdminUser{},
		&entity.Candidate{},
		&entity.Policy{},
		&entity.BasicTopic{},
		&entity.FAQ{},
		&entity.Event{},
	); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return sql.NewGormRepository(db), nil
}

// gormLogWriter 将 GORM 的慢查询与错误日志转到 logrus
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	logrus.WithField("component", "gorm").Warnf(format, args...)
}

var _ Repository = (*sql.GormRepository)(nil)

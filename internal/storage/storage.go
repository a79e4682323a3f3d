package storage

import (
	"campaign/internal/config"
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// TypeLocal 本地磁盘，由本服务通过 /uploads 直接提供访问
	TypeLocal = "local"
	// TypeS3 Amazon S3 或兼容服务
	TypeS3 = "s3"
	// TypeR2 Cloudflare R2（S3 协议）
	TypeR2 = "r2"
	// TypeMinIO 自建 MinIO
	TypeMinIO = "minio"
	// TypeOSS 阿里云 OSS
	TypeOSS = "oss"
	// TypeCOS 腾讯云 COS
	TypeCOS = "cos"
)

// ErrObjectNotFound 表示要删除的照片已经不存在
var ErrObjectNotFound = errors.New("storage: object not found")

// SaveOptions 描述一次写入。
//
// 对象键为 "[Category/]BaseName.Extension"；ContentType 为空时按扩展名推断。
// SkipIfExists 用于占位图这类只需写一次的文件。
type SaveOptions struct {
	Category     string
	BaseName     string
	Extension    string
	ContentType  string
	SkipIfExists bool
}

// Storage 保存候选人照片并返回对象键，对象键经 URLBuilder 转为公开地址
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
	Delete(ctx context.Context, key string) error
}

// LocalBaseDirProvider 由可以直接挂载为静态目录的后端实现
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// BucketEnsurer 由需要在启动时确认存储桶存在的后端实现
type BucketEnsurer interface {
	EnsureBucket(ctx context.Context) error
}

// NewStorage 按 STORAGE_TYPE 创建照片存储后端
func NewStorage(cfg config.Config) (Storage, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch kind {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(S3Options{
			Bucket:          cfg.StorageS3Bucket,
			Prefix:          cfg.StorageS3Prefix,
			Region:          cfg.StorageS3Region,
			Endpoint:        cfg.StorageS3Endpoint,
			AccessKeyID:     cfg.StorageS3AccessKeyID,
			SecretAccessKey: cfg.StorageS3SecretAccessKey,
			SessionToken:    cfg.StorageS3SessionToken,
			ForcePathStyle:  cfg.StorageS3ForcePathStyle,
		})
	case TypeR2:
		opts, err := r2Options(cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Storage(opts)
	case TypeMinIO:
		return NewMinIOStorage(MinIOOptions{
			Endpoint:  cfg.StorageMinIOEndpoint,
			Bucket:    cfg.StorageMinIOBucket,
			Prefix:    cfg.StorageMinIOPrefix,
			AccessKey: cfg.StorageMinIOAccessKey,
			SecretKey: cfg.StorageMinIOSecretKey,
			UseSSL:    cfg.StorageMinIOUseSSL,
		})
	case TypeOSS:
		return NewOSSStorage(OSSOptions{
			Endpoint:        cfg.StorageOSSEndpoint,
			Bucket:          cfg.StorageOSSBucket,
			Prefix:          cfg.StorageOSSPrefix,
			AccessKeyID:     cfg.StorageOSSAccessKeyID,
			AccessKeySecret: cfg.StorageOSSAccessKeySecret,
		})
	case TypeCOS:
		return NewCOSStorage(COSOptions{
			BucketURL: cfg.StorageCOSBucketURL,
			Prefix:    cfg.StorageCOSPrefix,
			SecretID:  cfg.StorageCOSSecretID,
			SecretKey: cfg.StorageCOSSecretKey,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

// r2Options 将 R2 配置映射为 S3 客户端参数；未配置 endpoint 时由 account id 推导
func r2Options(cfg config.Config) (S3Options, error) {
	endpoint := strings.TrimSpace(cfg.StorageR2Endpoint)
	if endpoint == "" {
		accountID := strings.TrimSpace(cfg.StorageR2AccountID)
		if accountID == "" {
			return S3Options{}, errors.New("storage: r2 needs STORAGE_R2_ENDPOINT or STORAGE_R2_ACCOUNT_ID")
		}
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}
	region := strings.TrimSpace(cfg.StorageR2Region)
	if region == "" {
		region = "auto"
	}
	return S3Options{
		Bucket:          cfg.StorageR2Bucket,
		Prefix:          cfg.StorageR2Prefix,
		Region:          region,
		Endpoint:        endpoint,
		AccessKeyID:     cfg.StorageR2AccessKeyID,
		SecretAccessKey: cfg.StorageR2SecretAccessKey,
		ForcePathStyle:  true,
	}, nil
}

// required 校验后端必填参数，返回第一个缺失项
func required(backend string, values ...string) error {
	for i := 0; i+1 < len(values); i += 2 {
		if strings.TrimSpace(values[i+1]) == "" {
			return fmt.Errorf("storage: %s %s is required", backend, values[i])
		}
	}
	return nil
}

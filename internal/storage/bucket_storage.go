package storage

import (
	"context"
	"errors"
	"fmt"
)

// objectClient 是各云厂商 SDK 需要提供的最小操作集
type objectClient interface {
	put(ctx context.Context, key string, data []byte, contentType string) error
	exists(ctx context.Context, key string) (bool, error)
	remove(ctx context.Context, key string) error
}

// bucketMaker 由支持自动建桶的客户端实现
type bucketMaker interface {
	ensureBucket(ctx context.Context) error
}

// bucketStorage 把对象键规则、前缀和“文件已不存在”语义统一在一处，SDK 差异留在 objectClient 中
type bucketStorage struct {
	backend string
	client  objectClient
	prefix  string
}

func newBucketStorage(backend string, client objectClient, prefix string) *bucketStorage {
	return &bucketStorage{backend: backend, client: client, prefix: trimPrefix(prefix)}
}

func (s *bucketStorage) Save(ctx context.Context, data []byte, opts SaveOptions) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty payload")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key, err := buildObjectPath(opts.Category, opts.BaseName, opts.Extension)
	if err != nil {
		return "", err
	}
	key = joinPrefix(s.prefix, key)

	if opts.SkipIfExists {
		found, err := s.client.exists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("%s: check %s: %w", s.backend, key, err)
		}
		if found {
			return key, nil
		}
	}

	if err := s.client.put(ctx, key, data, detectContentType(opts)); err != nil {
		return "", fmt.Errorf("%s: put %s: %w", s.backend, key, err)
	}
	return key, nil
}

// Delete 删除对象；对象不存在时返回 ErrObjectNotFound，调用方据此只记 warn
func (s *bucketStorage) Delete(ctx context.Context, key string) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}
	found, err := s.client.exists(ctx, cleaned)
	if err != nil {
		return fmt.Errorf("%s: check %s: %w", s.backend, cleaned, err)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, cleaned)
	}
	if err := s.client.remove(ctx, cleaned); err != nil {
		return fmt.Errorf("%s: delete %s: %w", s.backend, cleaned, err)
	}
	return nil
}

// EnsureBucket 仅对支持建桶的后端生效，其余后端要求存储桶已预先创建
func (s *bucketStorage) EnsureBucket(ctx context.Context) error {
	maker, ok := s.client.(bucketMaker)
	if !ok {
		return nil
	}
	if err := maker.ensureBucket(ctx); err != nil {
		return fmt.Errorf("%s: %w", s.backend, err)
	}
	return nil
}

var (
	_ Storage       = (*bucketStorage)(nil)
	_ BucketEnsurer = (*bucketStorage)(nil)
)

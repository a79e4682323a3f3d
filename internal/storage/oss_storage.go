package storage

import (
	"bytes"
	"context"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSOptions 阿里云 OSS 参数
type OSSOptions struct {
	Endpoint        string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	AccessKeySecret string
}

type ossObjects struct {
	bucket *oss.Bucket
}

// NewOSSStorage 创建阿里云 OSS 照片存储
func NewOSSStorage(opts OSSOptions) (Storage, error) {
	if err := required("oss",
		"endpoint", opts.Endpoint,
		"bucket", opts.Bucket,
		"access key id", opts.AccessKeyID,
		"access key secret", opts.AccessKeySecret,
	); err != nil {
		return nil, err
	}

	client, err := oss.New(strings.TrimSpace(opts.Endpoint), strings.TrimSpace(opts.AccessKeyID), strings.TrimSpace(opts.AccessKeySecret))
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(strings.TrimSpace(opts.Bucket))
	if err != nil {
		return nil, err
	}
	return newBucketStorage("oss", &ossObjects{bucket: bucket}, opts.Prefix), nil
}

func (o *ossObjects) put(ctx context.Context, key string, data []byte, contentType string) error {
	return o.bucket.PutObject(key, bytes.NewReader(data), oss.WithContext(ctx), oss.ContentType(contentType))
}

func (o *ossObjects) exists(ctx context.Context, key string) (bool, error) {
	return o.bucket.IsObjectExist(key, oss.WithContext(ctx))
}

func (o *ossObjects) remove(ctx context.Context, key string) error {
	return o.bucket.DeleteObject(key, oss.WithContext(ctx))
}

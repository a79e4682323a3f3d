package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"
)

// COSOptions 腾讯云 COS 参数，BucketURL 形如 https://<bucket>.cos.<region>.myqcloud.com
type COSOptions struct {
	BucketURL string
	Prefix    string
	SecretID  string
	SecretKey string
}

type cosObjects struct {
	client *cos.Client
}

// NewCOSStorage 创建腾讯云 COS 照片存储
func NewCOSStorage(opts COSOptions) (Storage, error) {
	if err := required("cos",
		"bucket url", opts.BucketURL,
		"secret id", opts.SecretID,
		"secret key", opts.SecretKey,
	); err != nil {
		return nil, err
	}
	bucketURL, err := url.Parse(strings.TrimSpace(opts.BucketURL))
	if err != nil {
		return nil, fmt.Errorf("storage: parse cos bucket url: %w", err)
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  strings.TrimSpace(opts.SecretID),
			SecretKey: strings.TrimSpace(opts.SecretKey),
		},
	})
	return newBucketStorage("cos", &cosObjects{client: client}, opts.Prefix), nil
}

func (o *cosObjects) put(ctx context.Context, key string, data []byte, contentType string) error {
	resp, err := o.client.Object.Put(ctx, key, bytes.NewReader(data), &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{ContentType: contentType},
	})
	closeCOSResponse(resp)
	return err
}

func (o *cosObjects) exists(ctx context.Context, key string) (bool, error) {
	resp, err := o.client.Object.Head(ctx, key, nil)
	closeCOSResponse(resp)
	if err == nil {
		return true, nil
	}
	if cos.IsNotFoundError(err) {
		return false, nil
	}
	return false, err
}

func (o *cosObjects) remove(ctx context.Context, key string) error {
	resp, err := o.client.Object.Delete(ctx, key)
	closeCOSResponse(resp)
	return err
}

func closeCOSResponse(resp *cos.Response) {
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
}

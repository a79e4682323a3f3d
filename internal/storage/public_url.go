package storage

import (
	"fmt"
	"strings"
)

// URLBuilder 在对象键与公开 URL 之间互相转换
type URLBuilder struct {
	base string
}

// NewURLBuilder 规范化公共 URL 基础路径
func NewURLBuilder(publicBase string) URLBuilder {
	trimmed := strings.TrimSpace(publicBase)
	if trimmed == "" {
		trimmed = "/uploads"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return URLBuilder{base: strings.TrimRight(trimmed, "/")}
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return URLBuilder{base: strings.TrimRight(trimmed, "/")}
}

// Base 返回规范化后的前缀，如 "/uploads"
func (b URLBuilder) Base() string {
	return b.base
}

// IsRemote 公开地址是否指向其他主机
func (b URLBuilder) IsRemote() bool {
	return strings.HasPrefix(b.base, "http://") || strings.HasPrefix(b.base, "https://")
}

// URL 返回对象键的公开地址
func (b URLBuilder) URL(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return fmt.Sprintf("%s/%s", b.base, strings.TrimLeft(trimmed, "/"))
}

// Key 从 URL 生成的地址中取回对象键，外部地址返回 ok=false
func (b URLBuilder) Key(url string) (string, bool) {
	trimmed := strings.TrimSpace(url)
	prefix := b.base + "/"
	if !strings.HasPrefix(trimmed, prefix) {
		return "", false
	}
	key, err := cleanKey(strings.TrimPrefix(trimmed, prefix))
	if err != nil {
		return "", false
	}
	return key, true
}

package storage

import (
	"errors"
	"mime"
	"path"
	"strings"
	"unicode"
)

// sanitizePathSegment 只保留小写字母、数字、'-' 与 '_'
func sanitizePathSegment(value string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r > unicode.MaxASCII:
			return -1
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return unicode.ToLower(r)
		default:
			return -1
		}
	}, strings.TrimSpace(value))
}

func normalizeExtension(ext string) string {
	if cleaned := sanitizePathSegment(strings.TrimPrefix(strings.TrimSpace(ext), ".")); cleaned != "" {
		return cleaned
	}
	return "bin"
}

// buildObjectPath 生成 "[category/]base.ext"，对象键与公开 URL 一一对应
func buildObjectPath(category, baseName, ext string) (string, error) {
	base := strings.Trim(sanitizePathSegment(strings.ReplaceAll(strings.TrimSpace(baseName), " ", "-")), "-_")
	if base == "" {
		return "", errors.New("storage: empty object name")
	}
	name := base + "." + normalizeExtension(ext)
	if dir := sanitizePathSegment(category); dir != "" {
		return dir + "/" + name, nil
	}
	return name, nil
}

func detectContentType(opts SaveOptions) string {
	if declared := strings.TrimSpace(opts.ContentType); declared != "" {
		return declared
	}
	if byExt := mime.TypeByExtension("." + normalizeExtension(opts.Extension)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}

func trimPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func joinPrefix(prefix, key string) string {
	key = strings.TrimLeft(key, "/")
	if prefix = trimPrefix(prefix); prefix == "" {
		return key
	}
	return prefix + "/" + key
}

// cleanKey 拒绝空键以及试图跳出存储根目录的键
func cleanKey(key string) (string, error) {
	trimmed := strings.TrimLeft(strings.TrimSpace(key), "/")
	if trimmed == "" {
		return "", errors.New("storage: empty object key")
	}
	cleaned := path.Clean(trimmed)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid object key")
	}
	return cleaned, nil
}

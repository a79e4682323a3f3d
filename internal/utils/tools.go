package utils

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// GenerateUUID returns a random RFC 4122 identifier.
func GenerateUUID() string {
	return uuid.NewString()
}

// ExtensionFromMime maps an image content type to its canonical file extension.
func ExtensionFromMime(mimeType string) string {
	if mimeType == "" {
		return ""
	}
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = parsed
	}

	switch strings.ToLower(mimeType) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return ""
	}
}

// NormalizeExtension lowercases an extension or file name suffix and strips the leading dot.
func NormalizeExtension(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if idx := strings.LastIndex(value, "."); idx >= 0 {
		value = value[idx+1:]
	}
	return value
}

// SniffContentType inspects the leading bytes and returns the detected media type without parameters.
func SniffContentType(data []byte) string {
	detected := mimetype.Detect(data)
	if detected == nil {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(detected.String())
	if err != nil {
		return detected.String()
	}
	return mediaType
}

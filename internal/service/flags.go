package service

import (
	"fmt"
	"strings"
)

// ParseFlag converts a wire value into a boolean.
// Accepted: true, false, "true", "false" (case-insensitive, surrounding spaces ignored).
// Multipart forms carry every value as a string, so both shapes reach this function.
func ParseFlag(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, fmt.Errorf("invalid boolean %q", v)
	default:
		return false, fmt.Errorf("invalid boolean of type %T", value)
	}
}

package helpers

import (
	"strconv"
	"strings"
)

// FormatID renders a storage identifier the way it appears in JSON payloads
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseID parses a positive identifier from a path or query parameter
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// StringPtr returns nil for empty strings
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package util

import (
	"path"
	"strings"
)

// SanitizeFileName makes a display name safe for a quoted Content-Disposition
// filename: path components, quotes and control characters are dropped.
// An empty result falls back to def.
func SanitizeFileName(name, def string) string {
	s := strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	s = path.Base(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '"':
			return '\''
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if s == "" || s == "." || s == "/" || s == ".." {
		return def
	}
	return s
}

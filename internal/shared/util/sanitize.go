package util

import (
	"errors"
	"strings"
)

// ErrBadFileName rejects names that are empty or try to escape the
// upload namespace.
var ErrBadFileName = errors.New("unusable file name")

// SanitizeFileName flattens path separators in an uploaded file name so it
// is safe to embed in a storage key. Traversal sequences are rejected
// outright rather than rewritten.
func SanitizeFileName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "..") {
		return "", ErrBadFileName
	}
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '_'
		default:
			return r
		}
	}, name)
	return clean, nil
}

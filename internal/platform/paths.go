package platform

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RelativeKey computes the reconciliation key for path under base: the
// relative path with forward slashes regardless of platform, so that a
// scan on Windows and a scan on Unix produce comparable keys.
func RelativeKey(base, path string) (string, error) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is not under base %s", path, base)
	}
	return filepath.ToSlash(rel), nil
}

// NormalizePath cleans a path using platform-specific separators
func NormalizePath(path string) string {
	return filepath.Clean(path)
}

// IsSubpath reports whether child is strictly inside parent. Both paths
// must already be absolute.
func IsSubpath(parent, child string) bool {
	return strings.HasPrefix(child, parent+string(filepath.Separator))
}

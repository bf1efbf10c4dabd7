package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateLayerName validates a layer name from a scene manifest.
// It rejects names that could break export paths, URLs, or log output.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateLayerName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLayer, "layer name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidLayer, "layer name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLayer, "layer name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidLayer, "layer name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateManifestPath validates a scene manifest path before loading.
// It ensures the path has the supported extension and no null bytes.
func ValidateManifestPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidManifest, "manifest path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidManifest, "manifest path contains null byte")
	}

	if ext := filepath.Ext(path); ext != ".toml" {
		return New(ErrCodeInvalidManifest, "unsupported manifest extension %q (want .toml)", ext)
	}

	return nil
}

// ValidateOutputPath validates a file path used for export output.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

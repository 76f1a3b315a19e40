package errors

import (
	"strings"
	"unicode"
)

// ValidateLayoutName validates a user-supplied layout name before it is
// stored or used in a cache key.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateLayoutName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "layout name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "layout name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "layout name contains invalid control characters")
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
			return New(ErrCodeInvalidInput, "layout name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// Supported output formats, visualization styles and diagram types.
// The CLI and the HTTP API validate against the same sets.
var (
	ValidFormats  = []string{"svg", "png", "pdf", "dot", "json"}
	ValidStyles   = []string{"classic", "mono"}
	ValidVizTypes = []string{"grid", "nodelink"}
)

// ValidateFormat validates an output format name.
func ValidateFormat(format string) error {
	for _, f := range ValidFormats {
		if format == f {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format %q (valid: %s)", format, strings.Join(ValidFormats, ", "))
}

// ValidateStyle validates a visualization style name.
func ValidateStyle(style string) error {
	for _, s := range ValidStyles {
		if style == s {
			return nil
		}
	}
	return New(ErrCodeInvalidStyle, "invalid style %q (valid: %s)", style, strings.Join(ValidStyles, ", "))
}

// ValidateVizType validates a diagram type name.
func ValidateVizType(vizType string) error {
	for _, v := range ValidVizTypes {
		if vizType == v {
			return nil
		}
	}
	return New(ErrCodeInvalidVizType, "invalid visualization type %q (valid: %s)", vizType, strings.Join(ValidVizTypes, ", "))
}

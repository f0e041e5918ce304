package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateAlbumID validates an album identifier for safety and correctness.
// It rejects identifiers that could be used for path traversal or injection
// attacks when the ID becomes part of a cache key, file name, or URL.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateAlbumID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidAlbum, "album id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidAlbum, "album id too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAlbum, "album id contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidAlbum, "album id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateAlbumFilename validates an album filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateAlbumFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidAlbum, "album filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidAlbum, "album filename cannot contain path separators")
	}

	// No hidden files (starting with .)
	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidAlbum, "album filename cannot be a hidden file")
	}

	return nil
}

// ValidatePath validates a file path within a scan root for safety.
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

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// itemIDRegex matches safe item identifiers (UUIDs, slugs, numeric IDs).
var itemIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateItemID validates an item identifier.
// Item IDs appear in cache keys and API paths, so the same conservative
// rules apply as for album IDs plus a stricter character set.
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "item id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidItem, "item id too long (max 256 characters)")
	}

	if !itemIDRegex.MatchString(id) {
		return New(ErrCodeInvalidItem, "invalid item id: %q", id)
	}

	return nil
}

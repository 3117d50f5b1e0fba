package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateLibraryName validates a library base name for safety and correctness.
// The name ends up inside file names such as lib<name>.so, so it rejects
// anything that could escape the dependency directory.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateLibraryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDeclaration, "library name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidDeclaration, "library name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDeclaration, "library name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidDeclaration, "library name %q contains invalid characters: %q", name, pattern)
		}
	}

	return nil
}

// groupRegex matches repository group identifiers (e.g. "org.acme.native").
var groupRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9._-]*$`)

// ValidateGroup validates a repository group identifier.
func ValidateGroup(group string) error {
	if group == "" {
		return New(ErrCodeInvalidDeclaration, "group cannot be empty")
	}
	if !groupRegex.MatchString(group) {
		return New(ErrCodeInvalidDeclaration, "invalid group: %q", group)
	}
	return nil
}

// classifierRegex matches artifact classifiers such as "linux_x86-64-shared-debug".
var classifierRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateClassifier validates an explicit classifier override.
func ValidateClassifier(classifier string) error {
	if !classifierRegex.MatchString(classifier) {
		return New(ErrCodeInvalidDeclaration, "invalid classifier: %q", classifier)
	}
	return nil
}

// ValidateManifestFilename validates a manifest filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be a hidden file")
	}

	return nil
}

// ValidatePath validates a relative path inside the project (e.g. build_dir).
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with a separator)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// Package validation checks file paths that arrive from outside the process,
// such as tool arguments from MCP clients and configured directories.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conneroisu/reelsmith/internal/errors"
)

// shellChars never appear in the paths reelsmith writes.
var shellChars = []string{";", "&", "|", "$", "`", "<", ">"}

// Path rejects empty paths, NUL bytes, shell metacharacters and any ".."
// segment, even one that cleaning would resolve. Absolute paths are allowed.
func Path(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidPath, "path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return errors.NewValidationError(errors.ErrCodeInvalidPath, "path contains a NUL byte").WithPath(path)
	}
	for _, c := range shellChars {
		if strings.Contains(path, c) {
			return errors.NewValidationError(errors.ErrCodeInvalidPath,
				fmt.Sprintf("path contains forbidden character %q", c)).WithPath(path)
		}
	}
	if hasParentSegment(path) {
		return errors.NewValidationError(errors.ErrCodeInvalidPath, "path contains traversal").WithPath(path)
	}
	return nil
}

// OptionalPath is Path for arguments that may be left empty.
func OptionalPath(path string) error {
	if path == "" {
		return nil
	}
	return Path(path)
}

// HasTraversal reports whether path still climbs out of its base after
// cleaning.
func HasTraversal(path string) bool {
	return hasParentSegment(filepath.Clean(path))
}

func hasParentSegment(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

// FileExtension checks name against the allowed extensions, ignoring case.
func FileExtension(name string, allowed ...string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidPath, "file must have an extension").WithPath(name)
	}
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return nil
		}
	}
	return errors.NewValidationError(errors.ErrCodeInvalidPath,
		fmt.Sprintf("file extension %q is not allowed (want %s)", ext, strings.Join(allowed, ", "))).WithPath(name)
}

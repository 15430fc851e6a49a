package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	filenameRegex       = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	filenameUnsafeRegex = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)
)

var ErrInvalidFilename = errors.New("invalid filename")

// ValidateFilename accepts a single path element made of letters, digits,
// underscores, dots and hyphens.
func ValidateFilename(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if !filenameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q contains forbidden characters", ErrInvalidFilename, name)
	}
	return nil
}

// SanitizeFilename replaces every run of unsafe characters with a hyphen.
func SanitizeFilename(name string) string {
	cleaned := strings.Trim(filenameUnsafeRegex.ReplaceAllString(name, "-"), "-")
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		cleaned = "untitled"
	}
	return cleaned
}

// SanitizeRelativePath sanitizes every element of a slash separated relative
// path. Parent references are dropped.
func SanitizeRelativePath(path string) string {
	var parts []string
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		parts = append(parts, SanitizeFilename(part))
	}
	if len(parts) == 0 {
		return "untitled"
	}
	return filepath.Join(parts...)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// attempts to remove dir and optionaly its content. Can ignore error, for example if folder does not exist.
func RemoveIO(dir string, recursive, ignoreError bool) error {
	var err error
	if recursive {
		err = os.RemoveAll(dir)
	} else {
		err = os.Remove(dir)
	}

	if ignoreError {
		return nil
	}
	return err
}

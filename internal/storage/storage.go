// Package storage defines errors and helpers shared by the image store backends.
package storage

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrImageNotFound is returned when the named image does not exist in the store.
	ErrImageNotFound = errors.New("image not found")

	// ErrInvalidName is returned for names that try to escape the store,
	// e.g. absolute paths or names containing path separators or "..".
	ErrInvalidName = errors.New("invalid image name")
)

// imageExtensions lists the extensions the store considers images.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsImageName reports whether name has a supported image extension.
// The comparison is case-insensitive, so "photo.PNG" qualifies.
func IsImageName(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ValidateName checks that name is a plain filename that cannot escape the
// store root. It rejects absolute paths, path separators and ".." segments.
func ValidateName(name string) error {
	if name == "" ||
		filepath.IsAbs(name) ||
		strings.ContainsAny(name, `/\`) ||
		strings.Contains(name, "..") {
		return ErrInvalidName
	}

	return nil
}

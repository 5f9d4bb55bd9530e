package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aliskhannn/image-compressor/internal/model"
	"github.com/aliskhannn/image-compressor/internal/storage"
)

// Storage serves images from a single directory on the local filesystem.
// All reads are whole-file, so memory use is bounded by image size.
type Storage struct {
	baseDir string
}

// NewStorage creates a Storage rooted at baseDir. The directory is created
// if it does not exist yet.
func NewStorage(baseDir string) (*Storage, error) {
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", baseDir, err)
	}

	return &Storage{baseDir: baseDir}, nil
}

// List returns every image in the directory together with its on-disk size
// in whole kilobytes. Non-image files and subdirectories are skipped.
func (s *Storage) List(_ context.Context) ([]model.ImageInfo, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory %s: %w", s.baseDir, err)
	}

	infos := make([]model.ImageInfo, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !storage.IsImageName(entry.Name()) {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}

		infos = append(infos, model.ImageInfo{
			Name:   entry.Name(),
			SizeKB: fi.Size() / 1024,
		})
	}

	return infos, nil
}

// Load reads the named image into memory. Names that could escape the base
// directory are rejected with storage.ErrInvalidName; missing files map to
// storage.ErrImageNotFound.
func (s *Storage) Load(_ context.Context, name string) ([]byte, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.baseDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrImageNotFound
		}

		return nil, fmt.Errorf("failed to read image %s: %w", name, err)
	}

	return data, nil
}

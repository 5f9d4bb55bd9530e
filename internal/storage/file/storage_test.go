package file

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aliskhannn/image-compressor/internal/storage"
)

func writeFile(t *testing.T, dir, name string, size int) {
	t.Helper()

	data := bytes.Repeat([]byte{0xAB}, size)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestListFiltersNonImages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "photo.PNG", 2048)
	writeFile(t, dir, "notes.txt", 512)

	if err := os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	s, err := NewStorage(dir)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}

	infos, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(infos) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(infos), infos)
	}
	if infos[0].Name != "photo.PNG" {
		t.Errorf("name = %q, want %q", infos[0].Name, "photo.PNG")
	}
	if infos[0].SizeKB != 2 {
		t.Errorf("size = %d KB, want 2 KB", infos[0].SizeKB)
	}
}

func TestListSizeRoundsDown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jpg", 1536) // 1.5 KB reports as 1 KB

	s, err := NewStorage(dir)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}

	infos, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(infos) != 1 || infos[0].SizeKB != 1 {
		t.Errorf("got %+v, want single entry of 1 KB", infos)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "photo.jpg", 100)

	s, err := NewStorage(dir)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}

	data, err := s.Load(context.Background(), "photo.jpg")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data) != 100 {
		t.Errorf("got %d bytes, want 100", len(data))
	}
}

func TestLoadMissing(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}

	_, err = s.Load(context.Background(), "missing.jpg")
	if !errors.Is(err, storage.ErrImageNotFound) {
		t.Errorf("got %v, want storage.ErrImageNotFound", err)
	}
}

func TestLoadRejectsEscapingNames(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}

	names := []string{
		"",
		"../secret.jpg",
		"..",
		"sub/photo.jpg",
		`sub\photo.jpg`,
		"/etc/passwd",
	}

	for _, name := range names {
		if _, err := s.Load(context.Background(), name); !errors.Is(err, storage.ErrInvalidName) {
			t.Errorf("Load(%q) = %v, want storage.ErrInvalidName", name, err)
		}
	}
}

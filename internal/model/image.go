package model

import (
	"time"

	"github.com/google/uuid"
)

// ImageInfo describes a single image stored in the image directory.
type ImageInfo struct {
	Name   string // filename within the store, e.g. "photo.jpg"
	SizeKB int64  // on-disk size in whole kilobytes (1024-byte KB)
}

// CompressionResult holds the output of a single compression run.
type CompressionResult struct {
	Data    []byte        // JPEG-encoded output
	SizeKB  float64       // output size in kilobytes (1024-byte KB)
	Quality int           // JPEG quality actually used for encoding
	Elapsed time.Duration // time spent loading, resizing and encoding
}

// CompressionEvent is published to the message queue after a successful
// compression. It carries request parameters and outcome, not the image bytes.
type CompressionEvent struct {
	ID           uuid.UUID `json:"id"`
	ImageName    string    `json:"image_name"`
	TargetWidth  int       `json:"target_width"`
	TargetHeight int       `json:"target_height"`
	TargetSizeKB float64   `json:"target_size_kb"`
	Quality      int       `json:"quality"`
	OutputSizeKB float64   `json:"output_size_kb"`
	ElapsedMS    int64     `json:"elapsed_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

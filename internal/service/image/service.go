package image

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/image-compressor/internal/compressor"
	"github.com/aliskhannn/image-compressor/internal/model"
)

// imageStorage defines the interface for the image store
// (local filesystem or S3/MinIO).
type imageStorage interface {
	List(ctx context.Context) ([]model.ImageInfo, error)
	Load(ctx context.Context, name string) ([]byte, error)
}

// producer defines the interface for publishing compression events
// to a message broker (e.g., Kafka).
type producer interface {
	Produce(ctx context.Context, event model.CompressionEvent) error
}

// CompressRequest carries the parameters of a single compression call.
type CompressRequest struct {
	ImageName    string
	Width        int
	Height       int
	TargetSizeKB float64
	Quality      int
	Watermark    string
}

// Service provides the business logic for the image endpoints: listing the
// store and running the load-resize-encode pipeline.
type Service struct {
	storage    imageStorage
	compressor *compressor.Compressor
	producer   producer
}

// NewService creates a new Service. producer may be nil when event
// publishing is disabled.
func NewService(s imageStorage, c *compressor.Compressor, p producer) *Service {
	return &Service{storage: s, compressor: c, producer: p}
}

// ListImages returns every image in the store with its size in whole kilobytes.
func (s *Service) ListImages(ctx context.Context) ([]model.ImageInfo, error) {
	infos, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	return infos, nil
}

// Compress loads the named image, resizes it to the requested dimensions and
// re-encodes it as JPEG at a quality estimated from the target size. The
// elapsed time covers the whole pipeline, matching what the caller observes.
func (s *Service) Compress(ctx context.Context, req CompressRequest) (model.CompressionResult, error) {
	start := time.Now()

	data, err := s.storage.Load(ctx, req.ImageName)
	if err != nil {
		return model.CompressionResult{}, fmt.Errorf("compress: %w", err)
	}

	out, quality, err := s.compressor.Compress(data, compressor.Params{
		Width:        req.Width,
		Height:       req.Height,
		TargetSizeKB: req.TargetSizeKB,
		Quality:      req.Quality,
		Watermark:    req.Watermark,
	})
	if err != nil {
		return model.CompressionResult{}, fmt.Errorf("compress %s: %w", req.ImageName, err)
	}

	result := model.CompressionResult{
		Data:    out,
		SizeKB:  float64(len(out)) / 1024,
		Quality: quality,
		Elapsed: time.Since(start),
	}

	s.publishEvent(ctx, req, result)

	return result, nil
}

// publishEvent sends a compression event to the broker when a producer is
// configured. Publish failures are logged and never fail the request.
func (s *Service) publishEvent(ctx context.Context, req CompressRequest, res model.CompressionResult) {
	if s.producer == nil {
		return
	}

	event := model.CompressionEvent{
		ID:           uuid.New(),
		ImageName:    req.ImageName,
		TargetWidth:  req.Width,
		TargetHeight: req.Height,
		TargetSizeKB: req.TargetSizeKB,
		Quality:      res.Quality,
		OutputSizeKB: res.SizeKB,
		ElapsedMS:    res.Elapsed.Milliseconds(),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.producer.Produce(ctx, event); err != nil {
		zlog.Logger.Err(err).
			Str("image", req.ImageName).
			Msg("failed to publish compression event")
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/image-compressor/internal/api/handlers/image"
	"github.com/aliskhannn/image-compressor/internal/api/router"
	"github.com/aliskhannn/image-compressor/internal/api/server"
	"github.com/aliskhannn/image-compressor/internal/compressor"
	"github.com/aliskhannn/image-compressor/internal/config"
	"github.com/aliskhannn/image-compressor/internal/kafka/producer"
	"github.com/aliskhannn/image-compressor/internal/model"
	imagesvc "github.com/aliskhannn/image-compressor/internal/service/image"
	filestorage "github.com/aliskhannn/image-compressor/internal/storage/file"
	miniostorage "github.com/aliskhannn/image-compressor/internal/storage/minio"
)

// imageStorage is the store shape the service expects; both backends implement it.
type imageStorage interface {
	List(ctx context.Context) ([]model.ImageInfo, error)
	Load(ctx context.Context, name string) ([]byte, error)
}

func main() {
	// Context & signals: used for graceful shutdown on system interrupts.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize logger and load application configuration.
	zlog.Init()
	cfg := config.MustLoad("./config/config.yml")

	// Pick the image store backend: local directory by default, MinIO when configured.
	var store imageStorage
	switch cfg.Storage.Backend {
	case "minio":
		s, err := miniostorage.NewStorage(ctx, cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.BucketName, cfg.Storage.UseSSL)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to connect to storage")
		}
		store = s
	default:
		s, err := filestorage.NewStorage(cfg.Storage.ImageDir)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to open image directory")
		}
		store = s
	}

	// Retry strategy for Kafka sends.
	strategy := retry.Strategy{
		Attempts: cfg.Retry.Attempts,
		Delay:    cfg.Retry.Delay,
		Backoff:  cfg.Retry.Backoff,
	}

	// Initialize compressor and service layer. The event producer is optional
	// and only wired in when enabled in the configuration.
	comp := compressor.New(cfg.Compression.WatermarkFontPath)

	var p *producer.Producer
	var service *imagesvc.Service
	if cfg.Kafka.Enabled {
		p = producer.New(&cfg.Kafka, strategy)
		service = imagesvc.NewService(store, comp, p)
	} else {
		service = imagesvc.NewService(store, comp, nil)
	}

	// HTTP handler for the image routes.
	imgHandler := image.NewHandler(service, image.Defaults{
		TargetSizeKB: cfg.Compression.DefaultTargetSizeKB,
		Quality:      cfg.Compression.DefaultQuality,
	})

	// Start HTTP server in a separate goroutine.
	r := router.Setup(imgHandler)
	s := server.New(cfg.Server.HTTPPort, r)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Block until context is canceled (SIGINT/SIGTERM).
	<-ctx.Done()
	zlog.Logger.Info().Msg("context done")

	// Graceful shutdown with timeout for HTTP server.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}
	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	// Close the Kafka producer client.
	if p != nil {
		if err := p.Client.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to close kafka producer client")
		}
	}
}

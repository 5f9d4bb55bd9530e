// Package image implements the HTTP handlers of the image API.
//
// GET /get_images
//
// Lists every image in the store with its on-disk size.
//
//	Response 200: [{"image_name": "photo.jpg", "image_size": "<int> KB"}, ...]
//	Response 500: {"error": "<message>"} on store failure
//
// GET /get_compressed_image
//
// Resizes the named image and re-encodes it as JPEG at a quality estimated
// from the target size.
//
//	image_name     string  required  image filename within the store
//	target_width   int     required  output width in pixels
//	target_height  int     required  output height in pixels
//	target_size_kb int     optional  desired output size, default 1024
//	quality        int     optional  base JPEG quality, default 85
//	watermark      string  optional  text drawn in the bottom-right corner
//
//	Response 200: {"time_elapsed": "<int> ms",
//	               "compressed_image_size": "<float, 2 decimals> KB",
//	               "compressed_image_base64": "<base64 JPEG>"}
//	Response 404: {"error": "Image <name> not found"}
//	Response 500: {"error": "An error occured: <message>"} on any other failure
package image

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/image-compressor/internal/api/respond"
	"github.com/aliskhannn/image-compressor/internal/model"
	imagesvc "github.com/aliskhannn/image-compressor/internal/service/image"
	"github.com/aliskhannn/image-compressor/internal/storage"
)

// service defines the interface for image listing and compression.
type service interface {
	ListImages(ctx context.Context) ([]model.ImageInfo, error)
	Compress(ctx context.Context, req imagesvc.CompressRequest) (model.CompressionResult, error)
}

// Defaults holds the fallback values applied when optional query
// parameters are absent.
type Defaults struct {
	TargetSizeKB float64
	Quality      int
}

// Handler provides HTTP handlers for the image endpoints.
// It depends on a service interface to perform the business logic.
type Handler struct {
	service  service
	defaults Defaults
}

// NewHandler creates a new Handler with the given service and defaults.
func NewHandler(s service, d Defaults) *Handler {
	return &Handler{service: s, defaults: d}
}

// listItem is the response shape of a single /get_images entry.
type listItem struct {
	ImageName string `json:"image_name"`
	ImageSize string `json:"image_size"`
}

// compressResponse is the response shape of /get_compressed_image.
type compressResponse struct {
	TimeElapsed           string `json:"time_elapsed"`
	CompressedImageSize   string `json:"compressed_image_size"`
	CompressedImageBase64 string `json:"compressed_image_base64"`
}

// List handles GET /get_images. It returns every image in the store with
// its on-disk size in whole kilobytes.
func (h *Handler) List(c *ginext.Context) {
	infos, err := h.service.ListImages(c.Request.Context())
	if err != nil {
		zlog.Logger.Err(err).Msg("failed to list images")
		respond.Fail(c, http.StatusInternalServerError, err)
		return
	}

	items := make([]listItem, 0, len(infos))
	for _, info := range infos {
		items = append(items, listItem{
			ImageName: info.Name,
			ImageSize: fmt.Sprintf("%d KB", info.SizeKB),
		})
	}

	respond.OK(c, items)
}

// Compress handles GET /get_compressed_image. It resizes the named image to
// the requested dimensions and re-encodes it as JPEG at a quality estimated
// from the target size, returning the result base64-encoded.
//
// Every failure apart from a missing image collapses into a generic 500 with
// the error text embedded, matching the observed behavior of the service this
// one replaces.
func (h *Handler) Compress(c *ginext.Context) {
	name := c.Query("image_name")
	if name == "" {
		h.internalError(c, errors.New("image_name is required"))
		return
	}

	width, err := strconv.Atoi(c.Query("target_width"))
	if err != nil {
		h.internalError(c, fmt.Errorf("invalid target_width: %v", err))
		return
	}

	height, err := strconv.Atoi(c.Query("target_height"))
	if err != nil {
		h.internalError(c, fmt.Errorf("invalid target_height: %v", err))
		return
	}

	targetSizeKB := h.defaults.TargetSizeKB
	if v := c.Query("target_size_kb"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.internalError(c, fmt.Errorf("invalid target_size_kb: %v", err))
			return
		}
		targetSizeKB = float64(n)
	}

	quality := h.defaults.Quality
	if v := c.Query("quality"); v != "" {
		quality, err = strconv.Atoi(v)
		if err != nil {
			h.internalError(c, fmt.Errorf("invalid quality: %v", err))
			return
		}
	}

	res, err := h.service.Compress(c.Request.Context(), imagesvc.CompressRequest{
		ImageName:    name,
		Width:        width,
		Height:       height,
		TargetSizeKB: targetSizeKB,
		Quality:      quality,
		Watermark:    c.Query("watermark"),
	})
	if err != nil {
		// Invalid names can never exist in the store, so they report the
		// same way as missing files.
		if errors.Is(err, storage.ErrImageNotFound) || errors.Is(err, storage.ErrInvalidName) {
			zlog.Logger.Warn().Str("image", name).Msg("image not found")
			respond.Fail(c, http.StatusNotFound, fmt.Errorf("Image %s not found", name))
			return
		}

		h.internalError(c, err)
		return
	}

	respond.OK(c, compressResponse{
		TimeElapsed:           fmt.Sprintf("%d ms", res.Elapsed.Milliseconds()),
		CompressedImageSize:   fmt.Sprintf("%.2f KB", res.SizeKB),
		CompressedImageBase64: base64.StdEncoding.EncodeToString(res.Data),
	})
}

// internalError reports err as the flat 500 shape used by this API.
// The "occured" spelling is kept for compatibility with existing clients.
func (h *Handler) internalError(c *ginext.Context, err error) {
	zlog.Logger.Err(err).Msg("compression request failed")
	respond.Fail(c, http.StatusInternalServerError, fmt.Errorf("An error occured: %v", err))
}

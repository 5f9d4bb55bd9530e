package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/image-compressor/internal/api/handlers/image"
	"github.com/aliskhannn/image-compressor/internal/middleware"
)

func Setup(h *image.Handler) *ginext.Engine {
	r := ginext.New()

	r.Use(middleware.CORSMiddleware())
	r.Use(ginext.Logger())
	r.Use(ginext.Recovery())

	r.GET("/get_images", h.List)               // listing images with sizes
	r.GET("/get_compressed_image", h.Compress) // resizing and compressing an image

	return r
}

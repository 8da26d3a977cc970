package router

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ytaudio/internal/handlers"
)

type Options struct {
	RateLimit float64
	RateBurst int
	StaticDir string
}

func NewRouter(h *handlers.Handler, opts Options) *gin.Engine {
	r := gin.Default()

	r.Use(metricsMiddleware())

	r.StaticFile("/", filepath.Join(opts.StaticDir, "index.html"))
	r.Static("/static", opts.StaticDir)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(rateLimitMiddleware(opts.RateLimit, opts.RateBurst))

	api.POST("/download", h.StartDownload)
	api.GET("/status", h.GetStatus)
	api.GET("/download/:filename", h.DownloadFile)
	api.GET("/clear", h.ClearDownloads)

	return r
}

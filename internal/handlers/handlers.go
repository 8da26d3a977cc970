package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"ytaudio/internal/models"
	"ytaudio/internal/service"
)

type Handler struct {
	service Servicer
	Log     *slog.Logger
}

type Servicer interface {
	Start(ctx context.Context, req models.DownloadRequest) (int, error)
	Status() models.StatusRecord
	FilePath(name string) (string, error)
	Clear() error
}

func NewHandler(srv Servicer, log *slog.Logger) *Handler {
	return &Handler{
		service: srv,
		Log:     log,
	}
}

func (h *Handler) StartDownload(c *gin.Context) {
	var req models.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Log.Error("invalid request", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))

		c.JSON(400, models.ErrorResponse{Error: err.Error()})
		return
	}

	count, err := h.service.Start(c.Request.Context(), req)
	if err != nil {
		h.Log.Warn("download not started", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))

		c.JSON(statusFor(err), models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(200, models.DownloadStarted{
		Success: true,
		Message: fmt.Sprintf("Started downloading %d video(s)", count),
	})
}

func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(200, h.service.Status())
}

func (h *Handler) DownloadFile(c *gin.Context) {
	name := c.Param("filename")

	path, err := h.service.FilePath(name)
	if err != nil {
		c.JSON(404, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

func (h *Handler) ClearDownloads(c *gin.Context) {
	if err := h.service.Clear(); err != nil {
		h.Log.Error("failed to clear downloads", slog.String("error", err.Error()))

		c.JSON(500, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(200, models.ClearResponse{Success: true})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrBusy),
		errors.Is(err, service.ErrNoURL),
		errors.Is(err, service.ErrNoPlaylistURL),
		errors.Is(err, service.ErrNoURLs),
		errors.Is(err, service.ErrNoValidURLs):
		return 400
	default:
		return 500
	}
}

package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ytaudio/internal/batch"
	"ytaudio/internal/config"
	"ytaudio/internal/handlers"
	"ytaudio/internal/logger"
	"ytaudio/internal/metrics"
	"ytaudio/internal/playlist"
	"ytaudio/internal/router"
	"ytaudio/internal/service"
	"ytaudio/internal/status"
	"ytaudio/internal/ytdlp"
)

func main() {
	cfg := config.MustLoad()

	log := logger.NewLogger()

	metrics.Register(prometheus.DefaultRegisterer)

	installCtx, cancelInstall := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := ytdlp.Install(installCtx); err != nil {
		log.Warn("could not provision yt-dlp, assuming it is on PATH", slog.String("error", err.Error()))
	}
	cancelInstall()

	client := ytdlp.NewClient(ytdlp.Options{
		AudioFormat:   cfg.Download.AudioFormat,
		AudioQuality:  cfg.Download.AudioQuality,
		PlaylistLimit: cfg.Download.PlaylistLimit,
	}, log)

	resolver := playlist.NewResolver(client, log)
	tracker := status.NewTracker()
	orch := batch.NewOrchestrator(client, tracker, log)

	s := service.NewService(cfg, log, tracker, resolver, orch)

	h := handlers.NewHandler(s, log)

	r := router.NewRouter(h, router.Options{
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
		StaticDir: "static",
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Info("start server", slog.String("host", cfg.Server.Host), slog.String("port", cfg.Server.Port))

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", slog.String("error", err.Error()))

			os.Exit(1)
		}
	}()

	sig := <-sigint
	log.Info("received signal", slog.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Info("failed to stop server", slog.String("error", err.Error()))
	}
}

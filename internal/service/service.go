package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"ytaudio/internal/batch"
	"ytaudio/internal/config"
	"ytaudio/internal/input"
	"ytaudio/internal/models"
	"ytaudio/internal/playlist"
	"ytaudio/internal/status"
	"ytaudio/internal/utils"
)

// Error texts double as the API wire messages.
var (
	ErrBusy          = errors.New("Download already in progress")
	ErrNoURL         = errors.New("No URL provided")
	ErrNoPlaylistURL = errors.New("No playlist URL provided")
	ErrNoURLs        = errors.New("No URLs provided")
	ErrNoValidURLs   = errors.New("No valid URLs found")
	ErrFileMissing   = errors.New("File not found")
)

type PlaylistResolver interface {
	Resolve(ctx context.Context, ref string) ([]string, error)
}

type Service struct {
	cfg      *config.Config
	log      *slog.Logger
	tracker  *status.Tracker
	resolver PlaylistResolver
	orch     *batch.Orchestrator
}

func NewService(cfg *config.Config, log *slog.Logger, tracker *status.Tracker, resolver PlaylistResolver, orch *batch.Orchestrator) *Service {
	return &Service{
		cfg:      cfg,
		log:      log,
		tracker:  tracker,
		resolver: resolver,
		orch:     orch,
	}
}

// Start validates a download request and launches the batch worker. It
// returns the number of accepted references immediately; the batch
// itself runs detached in the background.
func (s *Service) Start(ctx context.Context, req models.DownloadRequest) (int, error) {
	if s.tracker.Busy() {
		s.log.Warn("download already in progress")
		return 0, ErrBusy
	}

	refs, err := s.collectRefs(ctx, req)
	if err != nil {
		return 0, err
	}
	if len(refs) == 0 {
		return 0, ErrNoValidURLs
	}

	if !s.tracker.TryStart(len(refs)) {
		return 0, ErrBusy
	}

	batchID := uuid.New().String()
	s.log.Info("starting batch", slog.String("batchID", batchID), slog.Int("count", len(refs)))

	go s.runBatch(batchID, refs)

	return len(refs), nil
}

func (s *Service) collectRefs(ctx context.Context, req models.DownloadRequest) ([]string, error) {
	switch req.Type {
	case "single":
		url := strings.TrimSpace(req.URL)
		if url == "" {
			return nil, ErrNoURL
		}
		if playlist.IsPlaylistURL(url) {
			s.log.Warn("single URL carries a playlist parameter, fetching only the video", slog.String("url", url))
		}
		return input.FromURL(url), nil

	case "playlist":
		url := strings.TrimSpace(req.URL)
		if url == "" {
			return nil, ErrNoPlaylistURL
		}
		refs, err := input.FromPlaylist(ctx, s.resolver, url)
		if err != nil {
			s.log.Error("playlist resolution failed", slog.String("url", url), slog.String("error", err.Error()))
			return nil, ErrNoValidURLs
		}
		return refs, nil

	case "multiple":
		if strings.TrimSpace(req.URLs) == "" {
			return nil, ErrNoURLs
		}
		return input.FromLines(req.URLs), nil

	default:
		// unsupported types fall through to the no-valid-URLs reply
		return nil, nil
	}
}

// Status returns a point-in-time copy of the download state.
func (s *Service) Status() models.StatusRecord {
	return s.tracker.Snapshot()
}

// FilePath maps a requested file name to its path inside the download
// directory. The name is sanitized first, so traversal attempts surface
// as missing files.
func (s *Service) FilePath(name string) (string, error) {
	safe := utils.SanitizeFilename(name)
	if safe == "" {
		return "", ErrFileMissing
	}

	path := filepath.Join(s.cfg.Download.Dir, safe)
	if _, err := os.Stat(path); err != nil {
		return "", ErrFileMissing
	}

	return path, nil
}

// Clear removes every produced audio file from the download directory.
func (s *Service) Clear() error {
	if err := utils.RemoveAudioFiles(s.cfg.Download.Dir, s.cfg.Download.AudioFormat); err != nil {
		return err
	}

	s.tracker.SetFiles([]string{})
	return nil
}

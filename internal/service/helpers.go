package service

import (
	"context"
	"log/slog"

	"ytaudio/internal/metrics"
	"ytaudio/internal/utils"
)

// runBatch is the single background worker. It deliberately runs on a
// fresh context: the batch must outlive the HTTP request that started
// it.
func (s *Service) runBatch(batchID string, refs []string) {
	metrics.BatchInProgress.Set(1)
	defer metrics.BatchInProgress.Set(0)

	log := s.log.With(slog.String("batchID", batchID))

	summary, err := s.orch.Run(context.Background(), refs, s.cfg.Download.Dir)
	if err != nil {
		log.Error("batch aborted", slog.String("error", err.Error()))
	} else {
		log.Info("batch finished",
			slog.Int("succeeded", summary.Succeeded),
			slog.Int("failed", summary.Failed),
			slog.Int("total", summary.Total),
		)
	}

	files, err := utils.ListAudioFiles(s.cfg.Download.Dir, s.cfg.Download.AudioFormat)
	if err != nil {
		log.Error("failed to list output files", slog.String("error", err.Error()))
	}
	s.tracker.SetFiles(files)

	s.tracker.Finish()
}

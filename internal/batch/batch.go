package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"ytaudio/internal/metrics"
	"ytaudio/internal/models"
	"ytaudio/internal/utils"
	"ytaudio/internal/ytdlp"
)

// Fetcher is the slice of the media toolchain the orchestrator drives.
type Fetcher interface {
	Probe(ctx context.Context, url string) (*ytdlp.Item, error)
	FetchAudio(ctx context.Context, url, dir string, progress ytdlp.ProgressFunc) (string, error)
}

// StatusSink receives live batch progress. A nil sink is valid; all
// notifications are then dropped.
type StatusSink interface {
	StartItem(pos, total int)
	SetTitle(title string)
	Progress(percent float64)
	Succeeded(title string)
	Failed(title, errMsg string)
}

// Orchestrator walks a batch of references strictly in order, one fetch
// at a time, and never lets an item failure stop the batch.
type Orchestrator struct {
	fetcher Fetcher
	sink    StatusSink
	log     *slog.Logger
}

func NewOrchestrator(fetcher Fetcher, sink StatusSink, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		fetcher: fetcher,
		sink:    sink,
		log:     log,
	}
}

// Run fetches every reference into dest and reports the tally. Only
// context cancellation aborts the run; the in-flight item is abandoned
// and no summary is produced.
func (o *Orchestrator) Run(ctx context.Context, refs []string, dest string) (*models.BatchSummary, error) {
	if err := utils.EnsureDir(dest); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	summary := &models.BatchSummary{
		Total:   len(refs),
		Results: make([]models.FetchResult, 0, len(refs)),
	}

	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		o.startItem(i+1, len(refs))
		o.log.Info("processing reference",
			slog.Int("position", i+1),
			slog.Int("total", len(refs)),
			slog.String("url", ref),
		)

		result := o.fetchOne(ctx, ref, dest)
		if ctx.Err() != nil && !result.Succeeded {
			return nil, ctx.Err()
		}

		summary.Results = append(summary.Results, result)
		if result.Succeeded {
			summary.Succeeded++
			o.succeeded(result.Title)
			o.log.Info("completed", slog.String("title", result.Title))
		} else {
			summary.Failed++
			o.failed(result.Title, result.Error)
			o.log.Error("failed", slog.String("title", result.Title), slog.String("error", result.Error))
		}
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		abs = dest
	}
	summary.Destination = abs

	o.logSummary(summary)

	return summary, nil
}

// fetchOne probes the reference for its title and then downloads it. A
// probe failure fails the item without a fetch attempt.
func (o *Orchestrator) fetchOne(ctx context.Context, ref, dest string) models.FetchResult {
	result := models.FetchResult{Reference: ref, Title: "Unknown Title"}

	start := time.Now()
	defer func() {
		outcome := "failed"
		if result.Succeeded {
			outcome = "succeeded"
		}
		metrics.FetchesTotal.WithLabelValues(outcome).Inc()
		metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}()

	item, err := o.fetcher.Probe(ctx, ref)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if item.Title != "" {
		result.Title = item.Title
	}

	o.setTitle(result.Title)
	o.log.Info("downloading", slog.String("title", result.Title))

	if _, err := o.fetcher.FetchAudio(ctx, ref, dest, o.progress); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Succeeded = true
	return result
}

func (o *Orchestrator) logSummary(s *models.BatchSummary) {
	o.log.Info("=== Download Summary ===")
	o.log.Info("summary",
		slog.Int("succeeded", s.Succeeded),
		slog.Int("failed", s.Failed),
		slog.Int("total", s.Total),
		slog.String("destination", s.Destination),
	)
}

func (o *Orchestrator) startItem(pos, total int) {
	if o.sink != nil {
		o.sink.StartItem(pos, total)
	}
}

func (o *Orchestrator) setTitle(title string) {
	if o.sink != nil {
		o.sink.SetTitle(title)
	}
}

func (o *Orchestrator) progress(percent float64) {
	if o.sink != nil {
		o.sink.Progress(percent)
	}
}

func (o *Orchestrator) succeeded(title string) {
	if o.sink != nil {
		o.sink.Succeeded(title)
	}
}

func (o *Orchestrator) failed(title, errMsg string) {
	if o.sink != nil {
		o.sink.Failed(title, errMsg)
	}
}

package playlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ytaudio/internal/ytdlp"
)

// ErrUnresolvable means every resolution strategy came up empty.
var ErrUnresolvable = errors.New("no videos resolved from playlist")

// Extractor is the metadata-extraction capability the resolver drives.
type Extractor interface {
	ExtractFlat(ctx context.Context, url string) (*ytdlp.Extraction, error)
	ExtractFull(ctx context.Context, url string) (*ytdlp.Extraction, error)
	Probe(ctx context.Context, url string) (*ytdlp.Item, error)
}

// Resolver expands playlist references into ordered video URL lists,
// falling back through a fixed chain of recovery strategies when the
// primary flat extraction yields nothing.
type Resolver struct {
	extractor Extractor
	log       *slog.Logger
}

func NewResolver(extractor Extractor, log *slog.Logger) *Resolver {
	return &Resolver{extractor: extractor, log: log}
}

// Resolve returns the ordered video URLs behind ref. Recovery
// strategies run only when the primary extraction errors or yields an
// empty list; the first strategy producing a non-empty list wins.
func (r *Resolver) Resolve(ctx context.Context, ref string) ([]string, error) {
	urls, err := r.extractFlat(ctx, ref)
	if err == nil && len(urls) > 0 {
		return urls, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.log.Warn("flat playlist extraction failed", slog.String("url", ref), slog.String("error", err.Error()))
	}

	strategies := []func(context.Context, string) ([]string, error){
		r.retryWithCleanURL,
		r.fullExtraction,
		r.singleVideo,
	}

	for _, strategy := range strategies {
		urls, err := strategy(ctx, ref)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if len(urls) > 0 {
			return urls, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnresolvable, ref)
}

func (r *Resolver) extractFlat(ctx context.Context, ref string) ([]string, error) {
	ext, err := r.extractor.ExtractFlat(ctx, ref)
	if err != nil {
		return nil, err
	}

	switch ext.Kind {
	case ytdlp.KindPlaylist:
		r.log.Info("found playlist",
			slog.String("title", ext.Playlist.Title),
			slog.Int("entries", len(ext.Playlist.Entries)),
		)
		return r.entryURLs(ext.Playlist), nil
	case ytdlp.KindItem:
		r.log.Info("reference is a single video, not a playlist", slog.String("title", ext.Item.Title))
		return []string{watchURL(ext.Item.ID)}, nil
	default:
		return nil, fmt.Errorf("unexpected extraction result for %s", ref)
	}
}

func (r *Resolver) entryURLs(pl *ytdlp.Playlist) []string {
	urls := make([]string, 0, len(pl.Entries))
	for i, e := range pl.Entries {
		if e == nil {
			// deleted or private video
			r.log.Warn("skipping unavailable playlist entry", slog.Int("index", i))
			continue
		}
		switch {
		case e.URL != "":
			urls = append(urls, e.URL)
		case e.ID != "":
			urls = append(urls, watchURL(e.ID))
		default:
			r.log.Warn("playlist entry has no URL or ID", slog.String("title", e.Title))
		}
	}
	return urls
}

// retryWithCleanURL rebuilds a canonical playlist URL from an embedded
// "&list=" parameter and repeats the flat extraction once against it.
func (r *Resolver) retryWithCleanURL(ctx context.Context, ref string) ([]string, error) {
	id := alternateListID(ref)
	if id == "" {
		return nil, nil
	}

	clean := fmt.Sprintf(playlistURLTemplate, id)
	r.log.Info("retrying with clean playlist URL", slog.String("url", clean))

	return r.extractFlat(ctx, clean)
}

func (r *Resolver) fullExtraction(ctx context.Context, ref string) ([]string, error) {
	r.log.Info("trying full playlist extraction", slog.String("url", ref))

	ext, err := r.extractor.ExtractFull(ctx, ref)
	if err != nil {
		return nil, err
	}
	if ext.Kind != ytdlp.KindPlaylist {
		return nil, nil
	}

	urls := make([]string, 0, len(ext.Playlist.Entries))
	for _, e := range ext.Playlist.Entries {
		if e == nil {
			continue
		}
		switch {
		case e.PageURL != "":
			urls = append(urls, e.PageURL)
		case e.ID != "":
			urls = append(urls, watchURL(e.ID))
		}
	}
	return urls, nil
}

func (r *Resolver) singleVideo(ctx context.Context, ref string) ([]string, error) {
	r.log.Info("treating reference as a single video", slog.String("url", ref))

	item, err := r.extractor.Probe(ctx, ref)
	if err != nil {
		return nil, err
	}
	if item.ID == "" {
		return nil, nil
	}

	return []string{watchURL(item.ID)}, nil
}

func watchURL(id string) string {
	return fmt.Sprintf(watchURLTemplate, id)
}

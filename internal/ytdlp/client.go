package ytdlp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// ProgressFunc receives download completion percentages in the 0-100
// range.
type ProgressFunc func(percent float64)

type Options struct {
	AudioFormat   string
	AudioQuality  string
	PlaylistLimit int
}

// Client drives the external yt-dlp toolchain. Extraction, download and
// transcoding all happen inside the tool; the client only builds
// invocations and interprets their output.
type Client struct {
	opts Options
	log  *slog.Logger
}

func NewClient(opts Options, log *slog.Logger) *Client {
	if opts.AudioFormat == "" {
		opts.AudioFormat = "mp3"
	}
	if opts.AudioQuality == "" {
		opts.AudioQuality = "192K"
	}
	if opts.PlaylistLimit <= 0 {
		opts.PlaylistLimit = 50
	}

	return &Client{opts: opts, log: log}
}

// Install provisions the yt-dlp binary when it is not already on the
// host. Callers downgrade a failure to a warning: a preinstalled binary
// works without it.
func Install(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, nil)
	return err
}

// ExtractFlat lists playlist members without resolving each video.
func (c *Client) ExtractFlat(ctx context.Context, url string) (*Extraction, error) {
	dl := ytdlp.New().
		DumpSingleJSON().
		FlatPlaylist().
		IgnoreErrors().
		NoWarnings().
		Quiet()

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("flat extraction: %w", err)
	}

	return parseExtraction([]byte(res.Stdout))
}

// ExtractFull resolves playlist members with full per-video metadata,
// capped at the configured playlist limit.
func (c *Client) ExtractFull(ctx context.Context, url string) (*Extraction, error) {
	dl := ytdlp.New().
		DumpSingleJSON().
		PlaylistEnd(c.opts.PlaylistLimit).
		IgnoreErrors().
		NoWarnings().
		Quiet()

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("full extraction: %w", err)
	}

	return parseExtraction([]byte(res.Stdout))
}

// Probe fetches metadata for a single video without downloading it.
func (c *Client) Probe(ctx context.Context, url string) (*Item, error) {
	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		NoWarnings().
		Quiet()

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	ext, err := parseExtraction([]byte(res.Stdout))
	if err != nil {
		return nil, err
	}
	if ext.Item == nil {
		return nil, &DownloadError{URL: url, Err: fmt.Errorf("no video metadata in output")}
	}

	return ext.Item, nil
}

// FetchAudio downloads the best audio stream for url into dir and
// converts it to the configured format. The returned name is the file
// reported by the tool, best-effort: an empty name with a nil error
// means the tool finished without reporting one.
func (c *Client) FetchAudio(ctx context.Context, url, dir string, progress ProgressFunc) (string, error) {
	dl := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat(c.opts.AudioFormat).
		AudioQuality(c.opts.AudioQuality).
		Output(dir + "/%(title)s.%(ext)s").
		NoWarnings()

	if progress != nil {
		dl.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
			if update.TotalBytes > 0 {
				progress(float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100)
			}
		})
	}

	res, err := dl.Run(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &DownloadError{URL: url, Err: err}
	}

	c.log.Debug("fetch finished", slog.String("url", url))

	return downloadedFile(res), nil
}

func downloadedFile(res *ytdlp.Result) string {
	if res == nil {
		return ""
	}

	info, err := res.GetExtractedInfo()
	if err != nil || len(info) == 0 {
		return ""
	}
	if info[0].Filename != nil {
		return *info[0].Filename
	}

	return ""
}

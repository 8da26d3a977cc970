package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"

	"ytaudio/internal/batch"
	"ytaudio/internal/input"
	"ytaudio/internal/logger"
	"ytaudio/internal/models"
	"ytaudio/internal/playlist"
	"ytaudio/internal/ytdlp"
)

const logFileName = "ytaudio.log"

type options struct {
	file     string
	playlist string
	url      string
	output   string
}

func parseFlags() (options, error) {
	var opts options

	pflag.StringVarP(&opts.file, "file", "f", "", "text file containing video URLs (one per line)")
	pflag.StringVarP(&opts.playlist, "playlist", "p", "", "playlist URL")
	pflag.StringVarP(&opts.url, "url", "u", "", "single video URL")
	pflag.StringVarP(&opts.output, "output", "o", "./downloads", "output directory for audio files")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-f <file> | -p <playlist-url> | -u <video-url>] [-o <dir>]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "\nOptions:")
		pflag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nExamples:")
		fmt.Fprintln(os.Stderr, "  ytaudio -f urls.txt -o ./downloads")
		fmt.Fprintln(os.Stderr, "  ytaudio -p \"https://www.youtube.com/playlist?list=PLxxxxxx\" -o ./music")
		fmt.Fprintln(os.Stderr, "  ytaudio -u \"https://www.youtube.com/watch?v=xxxxxx\" -o ./audio")
	}
	pflag.Parse()

	selected := 0
	for _, v := range []string{opts.file, opts.playlist, opts.url} {
		if v != "" {
			selected++
		}
	}
	if selected == 0 {
		return opts, errors.New("one of --file, --playlist or --url is required")
	}
	if selected > 1 {
		return opts, errors.New("--file, --playlist and --url are mutually exclusive")
	}

	return opts, nil
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		pflag.Usage()
		os.Exit(2)
	}

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: cannot open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	log := logger.NewTeeLogger(logFile)
	log.Info("audio downloader started")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ytdlp.Install(ctx); err != nil {
		log.Warn("could not provision yt-dlp, assuming it is on PATH", slog.String("error", err.Error()))
	}

	client := ytdlp.NewClient(ytdlp.Options{}, log)
	resolver := playlist.NewResolver(client, log)

	refs, err := collectRefs(ctx, opts, resolver, log)
	if err != nil {
		exitOnError(ctx, log, err)
	}
	if len(refs) == 0 {
		log.Error("no URLs found to process")
		os.Exit(1)
	}

	log.Info("total URLs to process", slog.Int("count", len(refs)))

	orch := batch.NewOrchestrator(client, nil, log)
	summary, err := orch.Run(ctx, refs, opts.output)
	if err != nil {
		exitOnError(ctx, log, err)
	}

	renderSummary(os.Stdout, summary)
	log.Info("audio downloader completed")
}

func collectRefs(ctx context.Context, opts options, resolver *playlist.Resolver, log *slog.Logger) ([]string, error) {
	switch {
	case opts.file != "":
		log.Info("reading URLs from file", slog.String("path", opts.file))
		return input.FromFile(opts.file)
	case opts.playlist != "":
		log.Info("resolving playlist", slog.String("url", opts.playlist))
		return input.FromPlaylist(ctx, resolver, opts.playlist)
	default:
		log.Info("processing single URL", slog.String("url", opts.url))
		if playlist.IsPlaylistURL(opts.url) {
			log.Warn("URL carries a playlist parameter, only this video will be fetched; use --playlist for the whole list")
		}
		return input.FromURL(opts.url), nil
	}
}

// exitOnError distinguishes a user interrupt from a fatal error; both
// end the process with exit code 1.
func exitOnError(ctx context.Context, log *slog.Logger, err error) {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		log.Info("download interrupted by user")
		os.Exit(1)
	}

	log.Error("fatal error", slog.String("error", err.Error()))
	os.Exit(1)
}

func renderSummary(w io.Writer, s *models.BatchSummary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Title", "Status", "Error"})
	table.SetRowLine(false)

	for i, res := range s.Results {
		status := "OK"
		if !res.Succeeded {
			status = "FAILED"
		}
		table.Append([]string{
			fmt.Sprint(i + 1),
			res.Title,
			status,
			res.Error,
		})
	}
	table.Render()

	fmt.Fprintf(w, "Successful downloads: %d\n", s.Succeeded)
	fmt.Fprintf(w, "Failed downloads: %d\n", s.Failed)
	fmt.Fprintf(w, "Total processed: %d\n", s.Total)
	fmt.Fprintf(w, "Output directory: %s\n", s.Destination)
}

package ytdlp

import "fmt"

// DownloadError reports a failure surfaced by the yt-dlp tool for a
// specific reference. Failures of any other origin (spawn errors,
// unreadable output) travel as plain errors; callers handle both the
// same way.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed for %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

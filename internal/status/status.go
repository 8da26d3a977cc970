package status

import (
	"fmt"
	"sync"
	"time"

	"ytaudio/internal/models"
)

const maxLogEntries = 100

// Tracker guards the process-wide status record written by the single
// active batch worker and read by any number of pollers. One coarse
// mutex covers the whole record.
type Tracker struct {
	mu     sync.Mutex
	record models.StatusRecord
}

func NewTracker() *Tracker {
	return &Tracker{
		record: models.StatusRecord{
			Logs:        []models.LogEntry{},
			OutputItems: []string{},
		},
	}
}

// Busy reports whether a batch is currently running.
func (t *Tracker) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record.IsDownloading
}

// TryStart claims the tracker for a batch of total items. It refuses
// when a batch is already running. Every counter is reset in the same
// critical section that raises the downloading flag, so pollers never
// see the flag up next to stale numbers.
func (t *Tracker) TryStart(total int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.record.IsDownloading {
		return false
	}

	t.record = models.StatusRecord{
		IsDownloading: true,
		Total:         total,
		Logs:          []models.LogEntry{},
		OutputItems:   []string{},
	}
	return true
}

// StartItem marks the start of work on item pos of total.
func (t *Tracker) StartItem(pos, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.record.Progress = 0
	t.appendLog(models.LevelInfo, fmt.Sprintf("Processing video %d/%d", pos, total))
}

// SetTitle publishes the title of the item currently downloading.
func (t *Tracker) SetTitle(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.record.CurrentItem = title
	t.appendLog(models.LevelInfo, fmt.Sprintf("Downloading: %s", title))
}

// Progress publishes a download percentage for the current item.
func (t *Tracker) Progress(percent float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record.Progress = percent
}

// Succeeded tallies a completed item.
func (t *Tracker) Succeeded(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.record.Completed++
	t.appendLog(models.LevelSuccess, fmt.Sprintf("✓ Completed: %s", title))
}

// Failed tallies a failed item.
func (t *Tracker) Failed(title, errMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.record.Failed++
	t.appendLog(models.LevelError, fmt.Sprintf("✗ Failed: %s - %s", title, errMsg))
}

// SetFiles publishes the names of the produced audio files.
func (t *Tracker) SetFiles(names []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if names == nil {
		names = []string{}
	}
	t.record.OutputItems = names
}

// Finish releases the tracker after a batch and logs the final tally.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := fmt.Sprintf("Download complete! %d succeeded, %d failed", t.record.Completed, t.record.Failed)
	t.appendLog(models.LevelSuccess, msg)

	t.record.IsDownloading = false
	t.record.CurrentItem = ""
	t.record.Progress = 0
}

// Snapshot returns a copy of the record safe to use after the lock is
// released.
func (t *Tracker) Snapshot() models.StatusRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec := t.record
	rec.Logs = make([]models.LogEntry, len(t.record.Logs))
	copy(rec.Logs, t.record.Logs)
	rec.OutputItems = make([]string, len(t.record.OutputItems))
	copy(rec.OutputItems, t.record.OutputItems)
	return rec
}

// appendLog adds an entry and evicts the oldest ones past the cap.
// Callers must hold the lock.
func (t *Tracker) appendLog(level models.LogLevel, message string) {
	t.record.Logs = append(t.record.Logs, models.LogEntry{
		Timestamp: time.Now().Format("15:04:05"),
		Level:     level,
		Message:   message,
	})
	if len(t.record.Logs) > maxLogEntries {
		t.record.Logs = t.record.Logs[len(t.record.Logs)-maxLogEntries:]
	}
}

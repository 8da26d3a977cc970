package status

import (
	"fmt"
	"strings"
	"testing"

	"ytaudio/internal/models"
)

func TestTryStartRejectsWhileRunning(t *testing.T) {
	tr := NewTracker()

	if !tr.TryStart(3) {
		t.Fatal("first TryStart should succeed")
	}
	if tr.TryStart(5) {
		t.Fatal("second TryStart should be rejected while a batch runs")
	}

	if got := tr.Snapshot().Total; got != 3 {
		t.Errorf("expected the first batch's total 3, got %d", got)
	}

	tr.Finish()
	if !tr.TryStart(5) {
		t.Fatal("TryStart should succeed again after Finish")
	}
}

func TestTryStartResetsRecord(t *testing.T) {
	tr := NewTracker()
	tr.TryStart(2)
	tr.StartItem(1, 2)
	tr.SetTitle("first")
	tr.Progress(42)
	tr.Succeeded("first")
	tr.Failed("second", "boom")
	tr.SetFiles([]string{"first.mp3"})
	tr.Finish()

	if !tr.TryStart(7) {
		t.Fatal("TryStart should succeed on an idle tracker")
	}

	snap := tr.Snapshot()
	if !snap.IsDownloading {
		t.Error("expected is_downloading true after TryStart")
	}
	if snap.Total != 7 || snap.Completed != 0 || snap.Failed != 0 || snap.Progress != 0 || snap.CurrentItem != "" {
		t.Errorf("expected a clean record, got %+v", snap)
	}
	if len(snap.Logs) != 0 || len(snap.OutputItems) != 0 {
		t.Errorf("expected empty logs and output items, got %d logs and %d items", len(snap.Logs), len(snap.OutputItems))
	}
}

func TestItemLifecycleLogs(t *testing.T) {
	tr := NewTracker()
	tr.TryStart(2)

	tr.StartItem(1, 2)
	tr.SetTitle("Some Song")
	tr.Progress(55)
	tr.Succeeded("Some Song")
	tr.StartItem(2, 2)
	tr.SetTitle("Another Song")
	tr.Failed("Another Song", "network down")

	snap := tr.Snapshot()
	if snap.Completed != 1 || snap.Failed != 1 {
		t.Errorf("expected 1 completed and 1 failed, got %d and %d", snap.Completed, snap.Failed)
	}
	if snap.CurrentItem != "Another Song" {
		t.Errorf("unexpected current item: %q", snap.CurrentItem)
	}

	var messages []string
	for _, entry := range snap.Logs {
		messages = append(messages, entry.Message)
	}
	joined := strings.Join(messages, "\n")

	for _, want := range []string{
		"Processing video 1/2",
		"Downloading: Some Song",
		"✓ Completed: Some Song",
		"Processing video 2/2",
		"✗ Failed: Another Song - network down",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected log message %q in:\n%s", want, joined)
		}
	}
}

func TestStartItemResetsProgress(t *testing.T) {
	tr := NewTracker()
	tr.TryStart(2)
	tr.Progress(90)
	tr.StartItem(2, 2)

	if got := tr.Snapshot().Progress; got != 0 {
		t.Errorf("expected progress reset to 0 on a new item, got %v", got)
	}
}

func TestFinish(t *testing.T) {
	tr := NewTracker()
	tr.TryStart(2)
	tr.Succeeded("one")
	tr.SetTitle("two")
	tr.Progress(80)
	tr.Failed("two", "bad")
	tr.Finish()

	snap := tr.Snapshot()
	if snap.IsDownloading {
		t.Error("expected is_downloading false after Finish")
	}
	if snap.CurrentItem != "" || snap.Progress != 0 {
		t.Errorf("expected cleared current item and progress, got %q and %v", snap.CurrentItem, snap.Progress)
	}

	last := snap.Logs[len(snap.Logs)-1]
	if last.Message != "Download complete! 1 succeeded, 1 failed" {
		t.Errorf("unexpected final log message: %q", last.Message)
	}
	if last.Level != models.LevelSuccess {
		t.Errorf("expected success level on the final entry, got %s", last.Level)
	}
}

func TestLogEviction(t *testing.T) {
	tr := NewTracker()
	tr.TryStart(1)

	for i := 0; i < 150; i++ {
		tr.SetTitle(fmt.Sprintf("title-%d", i))
	}

	snap := tr.Snapshot()
	if len(snap.Logs) != 100 {
		t.Fatalf("expected the log capped at 100 entries, got %d", len(snap.Logs))
	}
	if snap.Logs[0].Message != "Downloading: title-50" {
		t.Errorf("expected the oldest surviving entry to be title-50, got %q", snap.Logs[0].Message)
	}
	if snap.Logs[99].Message != "Downloading: title-149" {
		t.Errorf("expected the newest entry to be title-149, got %q", snap.Logs[99].Message)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	tr := NewTracker()
	tr.TryStart(1)
	tr.SetTitle("original")
	tr.SetFiles([]string{"a.mp3"})

	snap := tr.Snapshot()
	snap.Logs[0].Message = "mutated"
	snap.OutputItems[0] = "mutated"

	fresh := tr.Snapshot()
	if fresh.Logs[0].Message == "mutated" {
		t.Error("mutating a snapshot's logs must not reach the tracker")
	}
	if fresh.OutputItems[0] == "mutated" {
		t.Error("mutating a snapshot's output items must not reach the tracker")
	}
}

func TestSetFilesNormalizesNil(t *testing.T) {
	tr := NewTracker()
	tr.SetFiles(nil)

	if got := tr.Snapshot().OutputItems; got == nil || len(got) != 0 {
		t.Errorf("expected an empty slice, got %v", got)
	}
}

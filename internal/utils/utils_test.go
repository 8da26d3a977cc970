package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"song.mp3", "song.mp3"},
		{"nested/dir/song.mp3", "song.mp3"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\windows\\system32", "system32"},
		{"..", ""},
		{".", ""},
		{"/", ""},
		{"", ""},
	}

	for _, test := range tests {
		if got := SanitizeFilename(test.in); got != test.want {
			t.Errorf("SanitizeFilename(%q) = %q, expected %q", test.in, got, test.want)
		}
	}
}

func TestListAndRemoveAudioFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.mp3", "a.mp3", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.mp3"), 0o755); err != nil {
		t.Fatalf("mkdir fixture: %v", err)
	}

	files, err := ListAudioFiles(dir, "mp3")
	if err != nil {
		t.Fatalf("ListAudioFiles() returned error: %v", err)
	}
	want := []string{"a.mp3", "b.mp3"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ListAudioFiles() = %v, expected %v", files, want)
	}

	if err := RemoveAudioFiles(dir, "mp3"); err != nil {
		t.Fatalf("RemoveAudioFiles() returned error: %v", err)
	}

	files, err = ListAudioFiles(dir, "mp3")
	if err != nil {
		t.Fatalf("ListAudioFiles() after removal returned error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no audio files left, got %v", files)
	}

	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Error("expected non-audio files to survive the cleanup")
	}
	if info, err := os.Stat(filepath.Join(dir, "sub.mp3")); err != nil || !info.IsDir() {
		t.Error("expected directories to survive the cleanup")
	}
}

func TestListAudioFilesMissingDir(t *testing.T) {
	files, err := ListAudioFiles(filepath.Join(t.TempDir(), "ghost"), "mp3")
	if err != nil {
		t.Fatalf("expected no error for a missing directory, got %v", err)
	}
	if files != nil {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() returned error: %v", err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir() on an existing directory returned error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("expected the directory to exist, got err=%v", err)
	}
}

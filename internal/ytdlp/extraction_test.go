package ytdlp

import (
	"errors"
	"strings"
	"testing"
)

func TestParseExtractionPlaylist(t *testing.T) {
	raw := `{
		"_type": "playlist",
		"id": "PLabc",
		"title": "Mix",
		"entries": [
			{"id": "v1", "title": "One", "url": "https://www.youtube.com/watch?v=v1"},
			null,
			{"id": "v2", "title": "Two", "webpage_url": "https://www.youtube.com/watch?v=v2"}
		]
	}`

	ext, err := parseExtraction([]byte(raw))
	if err != nil {
		t.Fatalf("parseExtraction() returned error: %v", err)
	}

	if ext.Kind != KindPlaylist {
		t.Fatalf("expected KindPlaylist, got %v", ext.Kind)
	}
	if ext.Playlist.Title != "Mix" {
		t.Errorf("unexpected playlist title: %q", ext.Playlist.Title)
	}
	if len(ext.Playlist.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(ext.Playlist.Entries))
	}
	if ext.Playlist.Entries[1] != nil {
		t.Error("expected the unavailable entry to stay nil")
	}
	if got := ext.Playlist.Entries[0].URL; got != "https://www.youtube.com/watch?v=v1" {
		t.Errorf("unexpected entry URL: %q", got)
	}
	if got := ext.Playlist.Entries[2].PageURL; got != "https://www.youtube.com/watch?v=v2" {
		t.Errorf("unexpected entry page URL: %q", got)
	}
}

func TestParseExtractionSingleVideo(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"typed video", `{"_type": "video", "id": "abc", "title": "Song"}`},
		{"untyped video", `{"id": "abc", "title": "Song"}`},
	}

	for _, test := range tests {
		ext, err := parseExtraction([]byte(test.raw))
		if err != nil {
			t.Fatalf("%s: parseExtraction() returned error: %v", test.name, err)
		}
		if ext.Kind != KindItem {
			t.Fatalf("%s: expected KindItem, got %v", test.name, ext.Kind)
		}
		if ext.Item.ID != "abc" || ext.Item.Title != "Song" {
			t.Errorf("%s: unexpected item %+v", test.name, ext.Item)
		}
	}
}

func TestParseExtractionUnknown(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"playlist without entries", `{"_type": "playlist", "id": "PLabc", "title": "Mix"}`},
		{"video without id", `{"title": "whatever"}`},
		{"empty object", `{}`},
	}

	for _, test := range tests {
		ext, err := parseExtraction([]byte(test.raw))
		if err != nil {
			t.Fatalf("%s: parseExtraction() returned error: %v", test.name, err)
		}
		if ext.Kind != KindUnknown {
			t.Errorf("%s: expected KindUnknown, got %v", test.name, ext.Kind)
		}
	}
}

func TestParseExtractionInvalidJSON(t *testing.T) {
	if _, err := parseExtraction([]byte("not json")); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestDownloadError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &DownloadError{URL: "https://www.youtube.com/watch?v=x", Err: cause}

	if !strings.Contains(err.Error(), "watch?v=x") {
		t.Errorf("expected the URL in the message, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected DownloadError to unwrap to its cause")
	}
}

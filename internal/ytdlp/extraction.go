package ytdlp

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates what a metadata extraction actually found.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlaylist
	KindItem
)

// Entry is one playlist member. Unavailable members (deleted or private
// videos) appear as nil entries so callers can count and skip them.
type Entry struct {
	ID      string
	Title   string
	URL     string
	PageURL string
}

type Playlist struct {
	Title   string
	Entries []*Entry
}

type Item struct {
	ID    string
	Title string
}

// Extraction is the parsed outcome of a metadata run. Exactly one of
// Playlist or Item is set, matching Kind; KindUnknown carries neither.
type Extraction struct {
	Kind     Kind
	Playlist *Playlist
	Item     *Item
}

// extractionPayload mirrors the subset of the tool's dump-single-json
// document this package reads.
type extractionPayload struct {
	Type    string          `json:"_type"`
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Entries []*entryPayload `json:"entries"`
}

type entryPayload struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	WebpageURL string `json:"webpage_url"`
}

func parseExtraction(raw []byte) (*Extraction, error) {
	var p extractionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse extraction output: %w", err)
	}

	switch {
	case p.Type == "playlist" && p.Entries != nil:
		pl := &Playlist{
			Title:   p.Title,
			Entries: make([]*Entry, 0, len(p.Entries)),
		}
		for _, e := range p.Entries {
			if e == nil {
				pl.Entries = append(pl.Entries, nil)
				continue
			}
			pl.Entries = append(pl.Entries, &Entry{
				ID:      e.ID,
				Title:   e.Title,
				URL:     e.URL,
				PageURL: e.WebpageURL,
			})
		}
		return &Extraction{Kind: KindPlaylist, Playlist: pl}, nil

	case (p.Type == "video" || p.Type == "") && p.ID != "":
		return &Extraction{Kind: KindItem, Item: &Item{ID: p.ID, Title: p.Title}}, nil

	default:
		return &Extraction{Kind: KindUnknown}, nil
	}
}

package playlist

import (
	"net/url"
	"strings"
)

const (
	watchURLTemplate    = "https://www.youtube.com/watch?v=%s"
	playlistURLTemplate = "https://www.youtube.com/playlist?list=%s"
)

// IsPlaylistURL reports whether ref points at a playlist on a supported
// video platform. Unparseable references are never playlists.
func IsPlaylistURL(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}

	host := u.Hostname()
	if !strings.Contains(host, "youtube.com") && !strings.Contains(host, "youtu.be") {
		return false
	}

	return u.Query().Has("list")
}

// alternateListID pulls the playlist identifier out of a watch-style
// URL carrying an embedded "&list=" parameter. Returns "" when the
// reference has none.
func alternateListID(ref string) string {
	_, after, found := strings.Cut(ref, "&list=")
	if !found {
		return ""
	}

	id, _, _ := strings.Cut(after, "&")
	return id
}

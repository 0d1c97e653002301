package session

import (
	"net/url"
	"strings"
)

const videoIDLength = 11

// ExtractVideoID pulls the 11-character video identifier out of a watch
// URL (`...?v=<id>`) or a short link (`youtu.be/<id>`). It returns false
// for anything else without touching the network.
func ExtractVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.Contains(raw, "youtube.com"):
		u, err := url.Parse(raw)
		if err != nil {
			return "", false
		}
		return validateVideoID(u.Query().Get("v"))
	case strings.Contains(raw, "youtu.be"):
		_, rest, ok := strings.Cut(raw, "youtu.be/")
		if !ok {
			return "", false
		}
		id, _, _ := strings.Cut(rest, "?")
		return validateVideoID(id)
	default:
		return "", false
	}
}

// WatchURL is the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func validateVideoID(id string) (string, bool) {
	if len(id) != videoIDLength {
		return "", false
	}
	return id, true
}

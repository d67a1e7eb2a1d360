// Package youtube holds the external collaborators of the clip pipeline:
// resolving a video identifier from a locator, scraping the "most replayed"
// heatmap out of the watch page, and fetching the total video duration.
package youtube

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidLocator reports a URL whose shape is not a recognised video
// locator. Malformed URLs normalise to this error; resolution never panics.
var ErrInvalidLocator = errors.New("not a recognised video link")

// ParseVideoID extracts the canonical video identifier from a locator.
// Recognised shapes:
//
//	https://youtu.be/<id>
//	https://www.youtube.com/watch?v=<id>
//	https://www.youtube.com/shorts/<id>
func ParseVideoID(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidLocator
	}

	switch u.Hostname() {
	case "youtu.be", "www.youtu.be":
		// The identifier must be the sole path segment.
		id := strings.Trim(u.Path, "/")
		if id == "" || strings.Contains(id, "/") {
			return "", ErrInvalidLocator
		}
		return id, nil

	case "youtube.com", "www.youtube.com":
		if u.Path == "/watch" {
			id := u.Query().Get("v")
			if id == "" {
				return "", ErrInvalidLocator
			}
			return id, nil
		}
		if rest, ok := strings.CutPrefix(u.Path, "/shorts/"); ok {
			id := strings.SplitN(rest, "/", 2)[0]
			if id == "" {
				return "", ErrInvalidLocator
			}
			return id, nil
		}
	}

	return "", ErrInvalidLocator
}

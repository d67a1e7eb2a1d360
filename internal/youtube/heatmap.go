package youtube

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/replaycut/replaycut/internal/segment"
)

const (
	watchPageTimeout = 20 * time.Second
	// A browser User-Agent; the watch page serves a reduced payload without one.
	userAgent = "Mozilla/5.0"

	maxWatchPageBytes = 16 * 1024 * 1024
)

// The heatmap markers sit inside the embedded player response JSON,
// between "markers" and "markersMetadata". The blob format is not under
// our control, so every mismatch degrades to "no markers".
var markersRe = regexp.MustCompile(`(?s)"markers":\s*(\[.*?\])\s*,\s*"?markersMetadata"?`)

// HeatmapClient scrapes the "most replayed" heatmap from the watch page.
type HeatmapClient struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHeatmapClient creates a scraper with a bounded request timeout.
func NewHeatmapClient(logger *slog.Logger) *HeatmapClient {
	return &HeatmapClient{
		httpClient: &http.Client{Timeout: watchPageTimeout},
		logger:     logger,
	}
}

// FetchMarkers returns the raw heatmap markers for a video, or an empty
// slice on any retrieval or parse failure. It never returns an error;
// "no markers" is a normal outcome the caller reports, not an exception.
func (c *HeatmapClient) FetchMarkers(ctx context.Context, videoID string) []segment.RawMarker {
	pageURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("watch page fetch failed", "video_id", videoID, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("watch page fetch failed", "video_id", videoID, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWatchPageBytes))
	if err != nil {
		c.logger.Warn("watch page read failed", "video_id", videoID, "error", err)
		return nil
	}

	markers := ParseMarkers(string(body))
	c.logger.Info("heatmap fetched", "video_id", videoID, "markers", len(markers))
	return markers
}

// ParseMarkers extracts heatmap marker records from watch page HTML.
// Records that fail numeric coercion are skipped silently; a page without
// a heatmap yields an empty slice.
func ParseMarkers(html string) []segment.RawMarker {
	m := markersRe.FindStringSubmatch(html)
	if m == nil {
		return nil
	}

	// The blob is embedded with escaped quotes.
	blob := strings.ReplaceAll(m[1], `\"`, `"`)
	parsed := gjson.Parse(blob)
	if !parsed.IsArray() {
		return nil
	}

	var markers []segment.RawMarker
	for _, rec := range parsed.Array() {
		if inner := rec.Get("heatMarkerRenderer"); inner.Exists() {
			rec = inner
		}

		intensity, ok := floatField(rec.Get("intensityScoreNormalized"))
		if !ok {
			continue
		}
		start, ok := floatField(rec.Get("startMillis"))
		if !ok {
			continue
		}
		duration, ok := floatField(rec.Get("durationMillis"))
		if !ok {
			continue
		}

		markers = append(markers, segment.RawMarker{
			StartMillis:    start,
			DurationMillis: duration,
			Intensity:      intensity,
		})
	}
	return markers
}

// floatField coerces a JSON field to float64. The watch page encodes
// millisecond values as strings, so both forms are accepted.
func floatField(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

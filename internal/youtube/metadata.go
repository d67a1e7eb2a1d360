package youtube

import (
	"context"
	"log/slog"

	ytclient "github.com/kkdai/youtube/v2"
)

// FallbackDuration is assumed when the total duration cannot be fetched.
// Window clamping just needs an upper bound; an hour is a safe one.
const FallbackDuration = 3600.0

// MetadataClient fetches video metadata through the YouTube player API.
type MetadataClient struct {
	client ytclient.Client
	logger *slog.Logger
}

// NewMetadataClient creates a metadata fetcher.
func NewMetadataClient(logger *slog.Logger) *MetadataClient {
	return &MetadataClient{logger: logger}
}

// FetchDuration returns the total video duration in seconds. It never
// fails the caller: any lookup error yields FallbackDuration.
func (c *MetadataClient) FetchDuration(ctx context.Context, videoID string) float64 {
	video, err := c.client.GetVideoContext(ctx, videoID)
	if err != nil {
		c.logger.Warn("duration lookup failed, using fallback",
			"video_id", videoID,
			"fallback_seconds", FallbackDuration,
			"error", err,
		)
		return FallbackDuration
	}

	secs := video.Duration.Seconds()
	if secs <= 0 {
		return FallbackDuration
	}
	return secs
}

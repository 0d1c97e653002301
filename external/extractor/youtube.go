package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"

	extractorpkg "github.com/habeshalab/tubebot/internal/extractor"
)

// YouTubeExtractor reads video metadata and media streams straight from
// YouTube's player API.
type YouTubeExtractor struct {
	client youtube.Client
}

func NewYouTubeExtractor() extractorpkg.Extractor {
	return &YouTubeExtractor{}
}

func (e *YouTubeExtractor) Info(ctx context.Context, url string) (*extractorpkg.VideoInfo, error) {
	video, err := e.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, mapError(err)
	}
	return &extractorpkg.VideoInfo{
		ID:          video.ID,
		Title:       video.Title,
		Description: video.Description,
	}, nil
}

func (e *YouTubeExtractor) Formats(ctx context.Context, url string) ([]extractorpkg.FormatDescriptor, error) {
	video, err := e.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, mapError(err)
	}
	formats := make([]extractorpkg.FormatDescriptor, 0, len(video.Formats))
	for i := range video.Formats {
		formats = append(formats, describeFormat(&video.Formats[i]))
	}
	return formats, nil
}

func (e *YouTubeExtractor) Stream(ctx context.Context, url, formatID string) (io.ReadCloser, error) {
	itag, err := strconv.Atoi(formatID)
	if err != nil {
		return nil, fmt.Errorf("invalid format id %q: %w", formatID, err)
	}
	video, err := e.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, mapError(err)
	}
	matches := video.Formats.Itag(itag)
	if len(matches) == 0 {
		return nil, fmt.Errorf("format %q is not offered for this video", formatID)
	}
	rc, _, err := e.client.GetStreamContext(ctx, video, &matches[0])
	if err != nil {
		return nil, mapError(err)
	}
	return rc, nil
}

func describeFormat(f *youtube.Format) extractorpkg.FormatDescriptor {
	hasVideo := strings.HasPrefix(f.MimeType, "video/")
	hasAudio := f.AudioChannels > 0 || strings.HasPrefix(f.MimeType, "audio/")
	label := f.QualityLabel
	if label == "" && !hasVideo {
		label = "Audio Only"
	}
	return extractorpkg.FormatDescriptor{
		ID:        strconv.Itoa(f.ItagNo),
		Label:     label,
		Container: containerFromMimeType(f.MimeType),
		HasVideo:  hasVideo,
		HasAudio:  hasAudio,
		SizeBytes: f.ContentLength,
	}
}

// containerFromMimeType extracts the subtype from strings like
// `video/mp4; codecs="avc1.42001E, mp4a.40.2"`.
func containerFromMimeType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	_, subtype, ok := strings.Cut(strings.TrimSpace(base), "/")
	if !ok || subtype == "" {
		return "mp4"
	}
	return subtype
}

// mapError folds the player library's playability failures into the
// unavailable sentinel so callers can tell dead videos from transient faults.
func mapError(err error) error {
	var playability *youtube.ErrPlayabiltyStatus
	if errors.As(err, &playability) {
		return fmt.Errorf("%w: %s", extractorpkg.ErrVideoUnavailable, playability.Reason)
	}
	if errors.Is(err, youtube.ErrVideoPrivate) {
		return fmt.Errorf("%w: video is private", extractorpkg.ErrVideoUnavailable)
	}
	return err
}

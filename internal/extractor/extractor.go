package extractor

import (
	"context"
	"errors"
	"io"
)

// ErrVideoUnavailable is returned when the provider explicitly reports the
// video as gone, private or otherwise unplayable. Callers must not retry it.
var ErrVideoUnavailable = errors.New("video unavailable")

// FormatDescriptor is one provider-declared encoding a user may download.
// SizeBytes is provider-reported and not authoritative; zero means unknown.
type FormatDescriptor struct {
	ID        string
	Label     string
	Container string
	HasVideo  bool
	HasAudio  bool
	SizeBytes int64
}

// IsAudioOnly reports whether the encoding carries audio without video.
func (f FormatDescriptor) IsAudioOnly() bool {
	return f.HasAudio && !f.HasVideo
}

// VideoInfo is the raw metadata of one video.
type VideoInfo struct {
	ID          string
	Title       string
	Description string
}

// Extractor is the media-extraction collaborator: URL to metadata, URL to
// the unfiltered encoding list, and URL plus encoding id to a byte stream.
type Extractor interface {
	Info(ctx context.Context, url string) (*VideoInfo, error)
	Formats(ctx context.Context, url string) ([]FormatDescriptor, error)
	Stream(ctx context.Context, url, formatID string) (io.ReadCloser, error)
}

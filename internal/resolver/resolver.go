package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/habeshalab/tubebot/internal/extractor"
)

// ErrNoFormats is returned when the provider answered but nothing in the
// encoding list can be delivered as a single playable file. It is a
// determinate outcome and is never retried.
var ErrNoFormats = errors.New("no downloadable formats available")

// Policy bounds the retry loop: Attempts is the total attempt count
// including the first one, Delay the fixed wait between attempts.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Delay: time.Second}
}

// Resolver turns a video URL into the list of downloadable encodings.
type Resolver struct {
	extractor extractor.Extractor
	policy    Policy
}

func New(ex extractor.Extractor, policy Policy) *Resolver {
	if policy.Attempts <= 0 {
		policy = DefaultPolicy()
	}
	return &Resolver{extractor: ex, policy: policy}
}

// Resolve fetches the encoding list for url and keeps only encodings that
// are playable on their own: video with audio, or audio-only. Transient
// failures are retried up to the policy bound; an explicit unavailable
// signal short-circuits immediately and the last transient error is
// surfaced unchanged.
func (r *Resolver) Resolve(ctx context.Context, url string) ([]extractor.FormatDescriptor, error) {
	var lastErr error
	for attempt := 1; attempt <= r.policy.Attempts; attempt++ {
		formats, err := r.extractor.Formats(ctx, url)
		if err == nil {
			playable := filterPlayable(formats)
			if len(playable) == 0 {
				return nil, ErrNoFormats
			}
			return playable, nil
		}
		if errors.Is(err, extractor.ErrVideoUnavailable) {
			return nil, err
		}
		lastErr = err
		if attempt == r.policy.Attempts {
			break
		}
		slog.Warn("format resolution failed, retrying", "url", url, "attempt", attempt, "max_attempts", r.policy.Attempts, "error", err)
		if err := sleep(ctx, r.policy.Delay); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func filterPlayable(formats []extractor.FormatDescriptor) []extractor.FormatDescriptor {
	playable := make([]extractor.FormatDescriptor, 0, len(formats))
	for _, f := range formats {
		if (f.HasVideo && f.HasAudio) || f.IsAudioOnly() {
			playable = append(playable, f)
		}
	}
	return playable
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting to retry: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

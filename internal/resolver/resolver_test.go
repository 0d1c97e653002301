package resolver

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/habeshalab/tubebot/internal/extractor"
)

type fakeExtractor struct {
	formats    []extractor.FormatDescriptor
	errs       []error
	attempts   int
	formatsErr error
	alwaysErr  bool
}

func (f *fakeExtractor) Info(_ context.Context, _ string) (*extractor.VideoInfo, error) {
	return &extractor.VideoInfo{}, nil
}

func (f *fakeExtractor) Formats(_ context.Context, _ string) ([]extractor.FormatDescriptor, error) {
	f.attempts++
	if f.alwaysErr {
		return nil, f.formatsErr
	}
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.formats, nil
}

func (f *fakeExtractor) Stream(_ context.Context, _, _ string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func muxedAndAudioFormats() []extractor.FormatDescriptor {
	return []extractor.FormatDescriptor{
		{ID: "137", Label: "1080p", Container: "mp4", HasVideo: true, HasAudio: false},
		{ID: "22", Label: "720p", Container: "mp4", HasVideo: true, HasAudio: true},
		{ID: "18", Label: "360p", Container: "mp4", HasVideo: true, HasAudio: true},
		{ID: "140", Label: "Audio Only", Container: "m4a", HasVideo: false, HasAudio: true},
	}
}

func TestResolve_FiltersVideoOnlyEncodings(t *testing.T) {
	ex := &fakeExtractor{formats: muxedAndAudioFormats()}
	r := New(ex, Policy{Attempts: 3})

	formats, err := r.Resolve(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(formats) != 3 {
		t.Fatalf("expected 3 playable formats, got %d", len(formats))
	}
	for _, f := range formats {
		if f.ID == "137" {
			t.Fatal("video-only encoding must be filtered out")
		}
	}
	if formats[0].ID != "22" || formats[1].ID != "18" || formats[2].ID != "140" {
		t.Fatalf("provider order must be preserved, got %v", formats)
	}
}

func TestResolve_RetriesTransientThreeTotalAttempts(t *testing.T) {
	transient := errors.New("connection reset")
	ex := &fakeExtractor{alwaysErr: true, formatsErr: transient}
	r := New(ex, Policy{Attempts: 3})

	_, err := r.Resolve(context.Background(), "url")
	if !errors.Is(err, transient) {
		t.Fatalf("expected final transient error surfaced unchanged, got %v", err)
	}
	if ex.attempts != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", ex.attempts)
	}
}

func TestResolve_TransientThenSuccess(t *testing.T) {
	ex := &fakeExtractor{
		errs:    []error{errors.New("timeout")},
		formats: muxedAndAudioFormats(),
	}
	r := New(ex, Policy{Attempts: 3})

	formats, err := r.Resolve(context.Background(), "url")
	if err != nil {
		t.Fatalf("expected success on second attempt, got %v", err)
	}
	if ex.attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", ex.attempts)
	}
	if len(formats) == 0 {
		t.Fatal("expected formats after retry")
	}
}

func TestResolve_UnavailableShortCircuits(t *testing.T) {
	ex := &fakeExtractor{alwaysErr: true, formatsErr: extractor.ErrVideoUnavailable}
	r := New(ex, Policy{Attempts: 3})

	_, err := r.Resolve(context.Background(), "url")
	if !errors.Is(err, extractor.ErrVideoUnavailable) {
		t.Fatalf("expected ErrVideoUnavailable, got %v", err)
	}
	if ex.attempts != 1 {
		t.Fatalf("expected exactly 1 attempt for unavailable video, got %d", ex.attempts)
	}
}

func TestResolve_EmptyAfterFilterIsNoFormatsNotRetried(t *testing.T) {
	ex := &fakeExtractor{formats: []extractor.FormatDescriptor{
		{ID: "137", Label: "1080p", Container: "mp4", HasVideo: true, HasAudio: false},
	}}
	r := New(ex, Policy{Attempts: 3})

	_, err := r.Resolve(context.Background(), "url")
	if !errors.Is(err, ErrNoFormats) {
		t.Fatalf("expected ErrNoFormats, got %v", err)
	}
	if ex.attempts != 1 {
		t.Fatalf("determinate empty result must not be retried, got %d attempts", ex.attempts)
	}
}

func TestResolve_CanceledContextStopsRetryWait(t *testing.T) {
	ex := &fakeExtractor{alwaysErr: true, formatsErr: errors.New("timeout")}
	r := New(ex, Policy{Attempts: 3, Delay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Resolve(ctx, "url")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

package download

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/habeshalab/tubebot/internal/extractor"
)

type fakeStreamExtractor struct {
	body      []byte
	streamErr error
	reader    io.ReadCloser
}

func (f *fakeStreamExtractor) Info(_ context.Context, _ string) (*extractor.VideoInfo, error) {
	return &extractor.VideoInfo{}, nil
}

func (f *fakeStreamExtractor) Formats(_ context.Context, _ string) ([]extractor.FormatDescriptor, error) {
	return nil, nil
}

func (f *fakeStreamExtractor) Stream(_ context.Context, _, _ string) (io.ReadCloser, error) {
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	if f.reader != nil {
		return f.reader, nil
	}
	return io.NopCloser(bytes.NewReader(f.body)), nil
}

type failingReader struct {
	data []byte
	err  error
	read bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.read {
		r.read = true
		n := copy(p, r.data)
		return n, nil
	}
	return 0, r.err
}

func (r *failingReader) Close() error { return nil }

// blockingStreamExtractor hands out a reader that delivers a head of bytes
// and then blocks until the stream's context is canceled, like an HTTP
// response body on a dead connection.
type blockingStreamExtractor struct {
	head []byte
}

func (e *blockingStreamExtractor) Info(_ context.Context, _ string) (*extractor.VideoInfo, error) {
	return &extractor.VideoInfo{}, nil
}

func (e *blockingStreamExtractor) Formats(_ context.Context, _ string) ([]extractor.FormatDescriptor, error) {
	return nil, nil
}

func (e *blockingStreamExtractor) Stream(ctx context.Context, _, _ string) (io.ReadCloser, error) {
	return &blockingReader{ctx: ctx, head: e.head}, nil
}

type blockingReader struct {
	ctx  context.Context
	head []byte
}

func (r *blockingReader) Read(p []byte) (int, error) {
	if len(r.head) > 0 {
		n := copy(p, r.head)
		r.head = r.head[n:]
		return n, nil
	}
	<-r.ctx.Done()
	return 0, r.ctx.Err()
}

func (r *blockingReader) Close() error { return nil }

func muxed720p() extractor.FormatDescriptor {
	return extractor.FormatDescriptor{ID: "22", Label: "720p", Container: "mp4", HasVideo: true, HasAudio: true}
}

func TestFetch_WritesStreamToFile(t *testing.T) {
	dir := t.TempDir()
	body := []byte("fake media payload")
	d := New(&fakeStreamExtractor{body: body}, dir, time.Minute)

	path, err := d.Fetch(context.Background(), "url", muxed720p(), false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Fatalf("output mismatch: got %q", got)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "video_") || !strings.HasSuffix(base, ".mp4") {
		t.Fatalf("unexpected output name %q", base)
	}
}

func TestFetch_AudioOnlyUsesMP3Extension(t *testing.T) {
	dir := t.TempDir()
	d := New(&fakeStreamExtractor{body: []byte("audio")}, dir, time.Minute)

	format := extractor.FormatDescriptor{ID: "140", Label: "Audio Only", Container: "m4a", HasVideo: false, HasAudio: true}
	path, err := d.Fetch(context.Background(), "url", format, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasSuffix(path, ".mp3") {
		t.Fatalf("expected .mp3 extension, got %q", path)
	}
}

func TestFetch_UniqueNamesUnderSameFormat(t *testing.T) {
	dir := t.TempDir()
	d := New(&fakeStreamExtractor{body: []byte("x")}, dir, time.Minute)

	first, err := d.Fetch(context.Background(), "url", muxed720p(), false)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := d.Fetch(context.Background(), "url", muxed720p(), false)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique output names, both were %q", first)
	}
}

func TestFetch_OpenStreamFailure(t *testing.T) {
	d := New(&fakeStreamExtractor{streamErr: errors.New("403")}, t.TempDir(), time.Minute)

	path, err := d.Fetch(context.Background(), "url", muxed720p(), false)
	if !errors.Is(err, ErrStream) {
		t.Fatalf("expected ErrStream, got %v", err)
	}
	if path != "" {
		t.Fatalf("expected no output path before the file is created, got %q", path)
	}
}

func TestFetch_MidStreamFailureLeavesPartialFile(t *testing.T) {
	dir := t.TempDir()
	reader := &failingReader{data: []byte("partial"), err: errors.New("connection reset")}
	d := New(&fakeStreamExtractor{reader: reader}, dir, time.Minute)

	path, err := d.Fetch(context.Background(), "url", muxed720p(), false)
	if !errors.Is(err, ErrStream) {
		t.Fatalf("expected ErrStream, got %v", err)
	}
	if path == "" {
		t.Fatal("expected partial file path for caller cleanup")
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Fatalf("partial file must be left on disk: %v", statErr)
	}
}

func TestFetch_StalledStreamReturnsWithinBound(t *testing.T) {
	dir := t.TempDir()
	d := New(&blockingStreamExtractor{head: []byte("head")}, dir, 200*time.Millisecond)

	type result struct {
		path string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		path, err := d.Fetch(context.Background(), "url", muxed720p(), false)
		done <- result{path: path, err: err}
	}()

	select {
	case res := <-done:
		if !errors.Is(res.err, ErrStream) {
			t.Fatalf("expected ErrStream, got %v", res.err)
		}
		if !strings.Contains(res.err.Error(), "no stream progress") {
			t.Fatalf("expected stall wording, got %v", res.err)
		}
		if res.path == "" {
			t.Fatal("expected partial file path for caller cleanup")
		}
		if _, statErr := os.Stat(res.path); statErr != nil {
			t.Fatalf("partial file must be left on disk: %v", statErr)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Fetch did not return despite the stall timeout")
	}
}

func TestPrepareDir_WipesStaleFiles(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "video_1_abc.mp4")
	if err := os.WriteFile(stale, []byte("stale"), 0o644); err != nil {
		t.Fatalf("writing stale file: %v", err)
	}

	if err := PrepareDir(dir); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatal("stale file must be removed at startup")
	}
}

func TestPrepareDir_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	if err := PrepareDir(dir); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist, err=%v", err)
	}
}

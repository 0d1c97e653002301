package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/habeshalab/tubebot/internal/extractor"
)

// ErrStream is returned for any read- or write-side failure while copying
// the encoding to disk, including a stalled stream. A partially written
// file is left behind for best-effort deletion by the caller.
var ErrStream = errors.New("download stream failed")

const copyChunkBytes = 256 * 1024

// Downloader streams a chosen encoding from the media provider into a
// local file under dir.
type Downloader struct {
	extractor    extractor.Extractor
	dir          string
	stallTimeout time.Duration
}

func New(ex extractor.Extractor, dir string, stallTimeout time.Duration) *Downloader {
	return &Downloader{extractor: ex, dir: dir, stallTimeout: stallTimeout}
}

// PrepareDir creates the downloads directory if needed and wipes any files
// left over from a previous run. It is called once at process startup.
func PrepareDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating downloads directory: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading downloads directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			slog.Warn("failed to remove stale download", "path", path, "error", err)
			continue
		}
		slog.Info("removed stale download", "path", path)
	}
	return nil
}

// Fetch copies the encoding identified by format from url into a freshly
// named local file and returns its path. On failure the returned path (if
// non-empty) points at a partial file the caller should delete. audioOnly
// switches the extension to mp3 regardless of the declared container.
//
// The stream is opened under a context owned by the stall watchdog, so a
// read that makes no progress within the stall timeout is aborted at the
// transport and surfaces as ErrStream.
func (d *Downloader) Fetch(ctx context.Context, url string, format extractor.FormatDescriptor, audioOnly bool) (string, error) {
	streamCtx := ctx
	var watch *stallWatch
	if d.stallTimeout > 0 {
		var cancel context.CancelFunc
		streamCtx, cancel = context.WithCancel(ctx)
		defer cancel()
		watch = startStallWatch(streamCtx, cancel, d.stallTimeout)
	}

	stream, err := d.extractor.Stream(streamCtx, url, format.ID)
	if err != nil {
		if watch != nil && watch.tripped() {
			return "", fmt.Errorf("%w: opening stream: no progress for %s", ErrStream, d.stallTimeout)
		}
		return "", fmt.Errorf("%w: opening stream: %v", ErrStream, err)
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			slog.Warn("failed to close media stream", "url", url, "error", cerr)
		}
	}()

	path := filepath.Join(d.dir, outputName(format, audioOnly))
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: creating output file: %v", ErrStream, err)
	}

	written, err := copyChunks(out, stream, watch)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		if watch != nil && watch.tripped() {
			return path, fmt.Errorf("%w: no stream progress for %s after %d bytes", ErrStream, d.stallTimeout, written)
		}
		return path, fmt.Errorf("%w: copying stream after %d bytes: %v", ErrStream, written, err)
	}
	slog.Info("download completed", "path", path, "bytes", written, "format_id", format.ID, "audio_only", audioOnly)
	return path, nil
}

// stallWatch cancels the stream context when no progress is recorded within
// the timeout. Cancellation propagates into the provider's transport, so a
// blocked read returns instead of hanging the chat.
type stallWatch struct {
	lastProgress atomic.Int64
	stalledCh    chan struct{}
}

func startStallWatch(ctx context.Context, cancel context.CancelFunc, timeout time.Duration) *stallWatch {
	w := &stallWatch{stalledCh: make(chan struct{})}
	w.lastProgress.Store(time.Now().UnixNano())
	go func() {
		ticker := time.NewTicker(timeout / 4)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				idle := time.Since(time.Unix(0, w.lastProgress.Load()))
				if idle >= timeout {
					close(w.stalledCh)
					cancel()
					return
				}
			}
		}
	}()
	return w
}

func (w *stallWatch) mark() {
	w.lastProgress.Store(time.Now().UnixNano())
}

func (w *stallWatch) tripped() bool {
	select {
	case <-w.stalledCh:
		return true
	default:
		return false
	}
}

// copyChunks copies src to dst in bounded chunks so the whole file is never
// buffered in memory, recording progress with the watch on every read.
func copyChunks(dst io.Writer, src io.Reader, watch *stallWatch) (int64, error) {
	buf := make([]byte, copyChunkBytes)
	var written int64
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if watch != nil {
				watch.mark()
			}
			wn, werr := dst.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, werr
			}
			if wn < n {
				return written, io.ErrShortWrite
			}
		}
		if err != nil {
			if err == io.EOF {
				return written, nil
			}
			return written, err
		}
	}
}

func outputName(format extractor.FormatDescriptor, audioOnly bool) string {
	ext := format.Container
	if audioOnly {
		ext = "mp3"
	}
	if ext == "" {
		ext = "mp4"
	}
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("video_%d_%s.%s", time.Now().UnixNano(), suffix, ext)
}

package status

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/habeshalab/tubebot/internal/repository"
	"github.com/habeshalab/tubebot/internal/stats"
)

const (
	shutdownTimeout = 5 * time.Second
	recentListLimit = 20
)

// Server exposes the bot's liveness, counters and recent history over HTTP.
type Server struct {
	srv *nethttp.Server
}

func NewServer(addr string, collector *stats.Collector, repo repository.Repository) *Server {
	mux := nethttp.NewServeMux()
	mux.Handle("/", rootHandler())
	mux.Handle("/health", healthHandler())
	mux.Handle("/api/stats", statsHandler(collector))
	mux.Handle("/api/recent", recentHandler(repo))
	return &Server{srv: &nethttp.Server{Addr: addr, Handler: mux}}
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	slog.Info("status server listening", "addr", s.srv.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func rootHandler() nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "Telegram YouTube Downloader Bot is running!")
	})
}

func healthHandler() nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusOK)
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
}

func statsHandler(collector *stats.Collector) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(collector.Snapshot()); err != nil {
			slog.Error("failed to encode stats snapshot", "error", err)
		}
	})
}

type recentDownload struct {
	VideoID      string    `json:"videoId"`
	VideoTitle   string    `json:"videoTitle"`
	FormatLabel  string    `json:"formatLabel"`
	AudioOnly    bool      `json:"audioOnly"`
	SizeBytes    int64     `json:"sizeBytes"`
	DeliveredAs  string    `json:"deliveredAs"`
	DurationMsec int64     `json:"durationMsec"`
	CreatedAt    time.Time `json:"createdAt"`
}

func recentHandler(repo repository.Repository) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		downloads, err := repo.ListRecentDownloads(r.Context(), recentListLimit)
		if err != nil {
			slog.Error("failed to list recent downloads", "error", err)
			nethttp.Error(w, "failed to list downloads", nethttp.StatusInternalServerError)
			return
		}
		list := make([]recentDownload, 0, len(downloads))
		for _, d := range downloads {
			list = append(list, recentDownload{
				VideoID:      d.VideoID,
				VideoTitle:   d.VideoTitle,
				FormatLabel:  d.FormatLabel,
				AudioOnly:    d.AudioOnly,
				SizeBytes:    d.SizeBytes,
				DeliveredAs:  d.DeliveredAs,
				DurationMsec: d.DurationMsec,
				CreatedAt:    d.CreatedAt,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(list); err != nil {
			slog.Error("failed to encode recent downloads", "error", err)
		}
	})
}

package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/habeshalab/tubebot/internal/repository"
	"github.com/habeshalab/tubebot/internal/stats"
)

type fakeRepository struct {
	downloads []repository.Download
	err       error
}

func (f *fakeRepository) InsertDownload(_ context.Context, _ repository.InsertDownloadInput) error {
	return nil
}

func (f *fakeRepository) CountDownloads(_ context.Context) (int64, error) {
	return int64(len(f.downloads)), nil
}

func (f *fakeRepository) ListRecentDownloads(_ context.Context, _ int) ([]repository.Download, error) {
	return f.downloads, f.err
}

func TestRootHandler_Banner(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	rootHandler().ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "is running!") {
		t.Fatalf("unexpected banner %q", rr.Body.String())
	}
}

func TestRootHandler_UnknownPathIs404(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/nope", nil)

	rootHandler().ServeHTTP(rr, req)

	if rr.Code != 404 {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHealthHandler_OK(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)

	healthHandler().ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("expected status 'ok', got %q", body.Status)
	}
}

func TestStatsHandler_ReportsCounters(t *testing.T) {
	collector := stats.NewCollector()
	collector.Seed(41)
	collector.RecordDownload(7)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/stats", nil)

	statsHandler(collector).ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var snap stats.Snapshot
	if err := json.Unmarshal(rr.Body.Bytes(), &snap); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if snap.TotalDownloads != 42 {
		t.Fatalf("expected 42 downloads, got %d", snap.TotalDownloads)
	}
	if snap.ActiveUsers != 1 {
		t.Fatalf("expected 1 active user, got %d", snap.ActiveUsers)
	}
	if !snap.IsOnline {
		t.Fatal("expected online flag")
	}
	if snap.Uptime == "" {
		t.Fatal("expected uptime to be set")
	}
}

func TestRecentHandler_ListsDownloads(t *testing.T) {
	repo := &fakeRepository{downloads: []repository.Download{
		{VideoID: "dQw4w9WgXcQ", VideoTitle: "A Video", FormatLabel: "720p", SizeBytes: 1024, DeliveredAs: "video", CreatedAt: time.Now()},
	}}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/recent", nil)

	recentHandler(repo).ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var list []struct {
		VideoID     string `json:"videoId"`
		DeliveredAs string `json:"deliveredAs"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(list) != 1 || list[0].VideoID != "dQw4w9WgXcQ" || list[0].DeliveredAs != "video" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestRecentHandler_EmptyHistoryIsEmptyArray(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/recent", nil)

	recentHandler(&fakeRepository{}).ServeHTTP(rr, req)

	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", rr.Body.String())
	}
}

func TestRecentHandler_RepositoryErrorIs500(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/recent", nil)

	recentHandler(&fakeRepository{err: errors.New("db down")}).ServeHTTP(rr, req)

	if rr.Code != 500 {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

package stats

import (
	"sync"
	"testing"
	"time"
)

func TestCollector_RecordDownload(t *testing.T) {
	c := NewCollector()
	c.RecordDownload(1)
	c.RecordDownload(1)
	c.RecordDownload(2)

	snap := c.Snapshot()
	if snap.TotalDownloads != 3 {
		t.Fatalf("expected 3 downloads, got %d", snap.TotalDownloads)
	}
	if snap.ActiveUsers != 2 {
		t.Fatalf("expected 2 active users, got %d", snap.ActiveUsers)
	}
	if !snap.IsOnline {
		t.Fatal("expected online snapshot")
	}
}

func TestCollector_SeedCarriesPersistedTotal(t *testing.T) {
	c := NewCollector()
	c.Seed(40)
	c.RecordDownload(1)
	if got := c.Snapshot().TotalDownloads; got != 41 {
		t.Fatalf("expected seeded total 41, got %d", got)
	}
}

func TestCollector_ConcurrentRecords(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(chat int64) {
			defer wg.Done()
			c.RecordDownload(chat % 5)
		}(int64(i))
	}
	wg.Wait()
	snap := c.Snapshot()
	if snap.TotalDownloads != 50 {
		t.Fatalf("expected 50 downloads, got %d", snap.TotalDownloads)
	}
	if snap.ActiveUsers != 5 {
		t.Fatalf("expected 5 active users, got %d", snap.ActiveUsers)
	}
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Minute, "5m"},
		{90 * time.Minute, "1h30m"},
		{26 * time.Hour, "26h0m"},
	}
	for _, tc := range cases {
		if got := formatUptime(tc.d); got != tc.want {
			t.Errorf("formatUptime(%s) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

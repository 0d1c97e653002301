package stats

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Collector tracks process-lifetime counters for the status surface.
// It is safe for concurrent use from every chat handler.
type Collector struct {
	startTime time.Time

	mu             sync.Mutex
	totalDownloads int64
	activeChats    map[int64]struct{}
}

// Snapshot is one point-in-time view of the counters.
type Snapshot struct {
	TotalDownloads int64  `json:"totalDownloads"`
	ActiveUsers    int    `json:"activeUsers"`
	Uptime         string `json:"uptime"`
	MemoryAllocMiB uint64 `json:"memoryAllocMiB"`
	Goroutines     int    `json:"goroutines"`
	IsOnline       bool   `json:"isOnline"`
}

func NewCollector() *Collector {
	return &Collector{
		startTime:   time.Now(),
		activeChats: make(map[int64]struct{}),
	}
}

// Seed sets the starting download total, used to carry the persisted count
// across restarts.
func (c *Collector) Seed(totalDownloads int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalDownloads = totalDownloads
}

// RecordDownload counts one completed delivery for a chat.
func (c *Collector) RecordDownload(chatID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalDownloads++
	c.activeChats[chatID] = struct{}{}
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	total := c.totalDownloads
	active := len(c.activeChats)
	c.mu.Unlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return Snapshot{
		TotalDownloads: total,
		ActiveUsers:    active,
		Uptime:         formatUptime(time.Since(c.startTime)),
		MemoryAllocMiB: mem.Alloc / 1024 / 1024,
		Goroutines:     runtime.NumGoroutine(),
		IsOnline:       true,
	}
}

func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%dm", hours, minutes)
}

package repository

import "context"

type InsertDownloadInput struct {
	ChatID       int64
	VideoID      string
	VideoTitle   string
	FormatID     string
	FormatLabel  string
	AudioOnly    bool
	SizeBytes    int64
	DeliveredAs  string
	DurationMsec int64
}

// Repository persists the download history. The bot works without it; a
// no-op implementation is wired when no database is configured.
type Repository interface {
	InsertDownload(ctx context.Context, input InsertDownloadInput) error
	CountDownloads(ctx context.Context) (int64, error)
	ListRecentDownloads(ctx context.Context, limit int) ([]Download, error)
}

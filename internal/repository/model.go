package repository

import "time"

// Download is one persisted history record. DeliveredAs holds the
// delivery kind string: audio, video or document.
type Download struct {
	ID           string
	ChatID       int64
	VideoID      string
	VideoTitle   string
	FormatID     string
	FormatLabel  string
	AudioOnly    bool
	SizeBytes    int64
	DeliveredAs  string
	DurationMsec int64
	CreatedAt    time.Time
}

package repository

import (
	"context"

	"github.com/habeshalab/tubebot/internal/repository"
)

// NoopRepository drops history writes. Used when no database is configured.
type NoopRepository struct{}

func NewNoopRepository() repository.Repository {
	return &NoopRepository{}
}

func (r *NoopRepository) InsertDownload(_ context.Context, _ repository.InsertDownloadInput) error {
	return nil
}

func (r *NoopRepository) CountDownloads(_ context.Context) (int64, error) {
	return 0, nil
}

func (r *NoopRepository) ListRecentDownloads(_ context.Context, _ int) ([]repository.Download, error) {
	return nil, nil
}

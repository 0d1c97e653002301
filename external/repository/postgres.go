package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habeshalab/tubebot/internal/repository"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) InsertDownload(ctx context.Context, input repository.InsertDownloadInput) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO downloads (chat_id, video_id, video_title, format_id, format_label, audio_only, size_bytes, delivered_as, duration_msec)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		input.ChatID, input.VideoID, input.VideoTitle, input.FormatID, input.FormatLabel,
		input.AudioOnly, input.SizeBytes, input.DeliveredAs, input.DurationMsec)
	return err
}

func (r *PostgresRepository) CountDownloads(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM downloads`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) ListRecentDownloads(ctx context.Context, limit int) ([]repository.Download, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, chat_id, video_id, video_title, format_id, format_label, audio_only, size_bytes, delivered_as, duration_msec, created_at
		 FROM downloads ORDER BY created_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.Download
	for rows.Next() {
		var d repository.Download
		if err := rows.Scan(&d.ID, &d.ChatID, &d.VideoID, &d.VideoTitle, &d.FormatID, &d.FormatLabel,
			&d.AudioOnly, &d.SizeBytes, &d.DeliveredAs, &d.DurationMsec, &d.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

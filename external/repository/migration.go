package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS downloads (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		chat_id BIGINT NOT NULL,
		video_id TEXT NOT NULL,
		video_title TEXT NOT NULL,
		format_id TEXT NOT NULL,
		format_label TEXT NOT NULL,
		audio_only BOOLEAN NOT NULL DEFAULT FALSE,
		size_bytes BIGINT NOT NULL DEFAULT 0,
		delivered_as TEXT NOT NULL,
		duration_msec BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_downloads_chat ON downloads (chat_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_downloads_video ON downloads (video_id)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
